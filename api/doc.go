// Package api implementa el cliente HTTP contra el backend de autorización.
//
// Cada método del Client corresponde a un endpoint del backend: recibe el
// request DTO, lo serializa como JSON, autentica con Basic (credenciales de
// servicio o de service owner según el endpoint) y deserializa la respuesta.
// Respuestas no-2xx se devuelven como *Error con el resultCode/resultMessage
// del backend cuando están disponibles.
//
// El cliente reintenta errores de transporte y 5xx con backoff exponencial,
// y puede cachear resultados de introspección (ver conf.Configuration.Cache).
package api
