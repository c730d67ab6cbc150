package remote

import "errors"

// Tipos de falha do cliente da autoridade. Para o coordinator todos
// disparam o mesmo fallback local, mas os logs distinguem a causa.
var (
	ErrUnreachable      = errors.New("authority unreachable")
	ErrBadStatus        = errors.New("authority returned unexpected status")
	ErrMalformedPayload = errors.New("authority payload malformed")
	ErrApplication      = errors.New("authority rejected request")
)

// IsTransport diz se o erro veio deste cliente, qualquer que seja o tipo.
func IsTransport(err error) bool {
	return errors.Is(err, ErrUnreachable) ||
		errors.Is(err, ErrBadStatus) ||
		errors.Is(err, ErrMalformedPayload) ||
		errors.Is(err, ErrApplication)
}
