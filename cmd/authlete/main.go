// authlete es una CLI de inspección contra el backend: listar y ver services
// y clients, introspectar y revocar tokens. Útil para operar un servicio sin
// escribir código.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/authlete-go/api"
	"github.com/dropDatabas3/authlete-go/conf"
	"github.com/dropDatabas3/authlete-go/dto"
	"github.com/dropDatabas3/authlete-go/internal/observability/logger"
)

func main() {
	var (
		confPath string
		out      = envOr("AUTHLETE_OUT", "json")
		timeout  = 30 * time.Second
	)

	var cl api.Client

	root := &cobra.Command{
		Use:   "authlete",
		Short: "CLI contra el backend de autorización",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var cfg *conf.Configuration
			var err error
			if confPath != "" {
				cfg, err = conf.LoadFile(confPath)
			} else {
				cfg, err = conf.LoadEnv()
			}
			if err != nil {
				return err
			}
			logger.Init(logger.Config{Env: cfg.Log.Env, Level: cfg.Log.Level})
			cl, err = api.New(cfg)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cl != nil {
				_ = cl.Close()
			}
			_ = logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&confPath, "conf", "", "Archivo YAML de configuración (default: solo env)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	ctx := func() (context.Context, context.CancelFunc) {
		return context.WithTimeout(context.Background(), timeout)
	}

	print := func(v any) {
		if out == "json" {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
		if s, ok := v.(interface{ Summarize() string }); ok {
			fmt.Println(s.Summarize())
			return
		}
		p, _ := json.Marshal(v)
		fmt.Println(string(p))
	}

	// service
	serviceCmd := &cobra.Command{Use: "service", Short: "Gestión de services (credenciales de owner)"}

	var svcStart, svcEnd int
	serviceListCmd := &cobra.Command{
		Use:   "list",
		Short: "Listar services",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cancel := ctx()
			defer cancel()
			resp, err := cl.ServiceList(c, svcStart, svcEnd)
			if err != nil {
				return err
			}
			print(resp)
			return nil
		},
	}
	serviceListCmd.Flags().IntVar(&svcStart, "start", 0, "Índice inicial")
	serviceListCmd.Flags().IntVar(&svcEnd, "end", 10, "Índice final (exclusivo)")

	serviceGetCmd := &cobra.Command{
		Use:   "get <apiKey>",
		Short: "Ver un service por API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("apiKey inválida: %s", args[0])
			}
			c, cancel := ctx()
			defer cancel()
			resp, err := cl.ServiceGet(c, key)
			if err != nil {
				return err
			}
			print(resp)
			return nil
		},
	}
	serviceCmd.AddCommand(serviceListCmd, serviceGetCmd)

	// client
	clientCmd := &cobra.Command{Use: "client", Short: "Gestión de clients del servicio"}

	var cliStart, cliEnd int
	var cliDeveloper string
	clientListCmd := &cobra.Command{
		Use:   "list",
		Short: "Listar clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cancel := ctx()
			defer cancel()
			resp, err := cl.ClientList(c, cliDeveloper, cliStart, cliEnd)
			if err != nil {
				return err
			}
			print(resp)
			return nil
		},
	}
	clientListCmd.Flags().IntVar(&cliStart, "start", 0, "Índice inicial")
	clientListCmd.Flags().IntVar(&cliEnd, "end", 10, "Índice final (exclusivo)")
	clientListCmd.Flags().StringVar(&cliDeveloper, "developer", "", "Filtrar por developer")

	clientGetCmd := &cobra.Command{
		Use:   "get <clientId>",
		Short: "Ver un client por ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("clientId inválido: %s", args[0])
			}
			c, cancel := ctx()
			defer cancel()
			resp, err := cl.ClientGet(c, id)
			if err != nil {
				return err
			}
			print(resp)
			return nil
		},
	}
	clientCmd.AddCommand(clientListCmd, clientGetCmd)

	// token
	tokenCmd := &cobra.Command{Use: "token", Short: "Operaciones sobre tokens"}

	var introScopes []string
	introspectCmd := &cobra.Command{
		Use:   "introspect <accessToken>",
		Short: "Introspectar un access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cancel := ctx()
			defer cancel()
			resp, err := cl.Introspection(c, &dto.IntrospectionRequest{
				Token:  args[0],
				Scopes: introScopes,
			})
			if err != nil {
				return err
			}
			print(resp)
			return nil
		},
	}
	introspectCmd.Flags().StringSliceVar(&introScopes, "scope", nil, "Scopes requeridos (repetible)")

	revokeCmd := &cobra.Command{
		Use:   "revoke <token>",
		Short: "Revocar un access o refresh token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cancel := ctx()
			defer cancel()
			resp, err := cl.Revocation(c, &dto.RevocationRequest{
				Parameters: "token=" + args[0],
			})
			if err != nil {
				return err
			}
			if resp.Action == dto.RevocationOK {
				fmt.Println("revoked")
				return nil
			}
			print(resp)
			return nil
		},
	}
	tokenCmd.AddCommand(introspectCmd, revokeCmd)

	root.AddCommand(serviceCmd, clientCmd, tokenCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
