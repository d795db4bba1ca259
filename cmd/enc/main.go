// enc cifra un secreto para pegarlo en los campos *_enc del YAML de
// configuración (service_api_secret_enc, service_owner_api_secret_enc).
// Requiere AUTHLETE_SECRETBOX_MASTER_KEY en el entorno.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/dropDatabas3/authlete-go/internal/secretbox"
)

func main() {
	_ = godotenv.Load(".env")

	if len(os.Args) != 2 {
		log.Fatalf("uso: %s <secreto>", os.Args[0])
	}
	enc, err := secretbox.Encrypt(os.Args[1])
	if err != nil {
		log.Fatalf("encrypt: %v", err)
	}
	fmt.Println(enc)
}
