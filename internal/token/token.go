// Package token emite, verifica y rota los tokens de sesión.
//
// Los dos tokens (access y refresh) son JWT RS256 autocontenidos: la firma
// con la privada + el claim exp bastan para validar, no hay estado en DB.
// El claim token_type distingue el uso: un access NUNCA sirve donde se
// espera un refresh ni al revés, y la confusión de tipo se rechaza de forma
// explícita, no confiando en la expiración.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/sp1ral-dev/veridian/internal/observability/metrics"
	"github.com/sp1ral-dev/veridian/internal/security/keys"
)

// Kind es el tipo de token, serializado en el claim token_type.
type Kind string

const (
	KindAccess  Kind = "access_token"
	KindRefresh Kind = "refresh_token"
)

// Errores del servicio. Los tres de verificación son distintos para que
// el caller loguee distinto; todos colapsan a 401 en el borde público.
var (
	ErrInvalidSubject    = errors.New("token: subject y userID son obligatorios")
	ErrTokenExpired      = errors.New("token: expirado")
	ErrTokenTypeMismatch = errors.New("token: tipo incorrecto")
	ErrTokenMalformed    = errors.New("token: firma o formato inválido")
)

// Claims es el contenido verificado de un token.
type Claims struct {
	Subject   string // email
	UserID    string
	Kind      Kind
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Service firma con la privada y verifica con la pública del KeyPair.
type Service struct {
	keys       *keys.KeyPair
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// New crea el servicio. El KeyPair ya viene cargado e inmutable.
func New(kp *keys.KeyPair, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{keys: kp, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// AccessTTL expone el TTL del access token (para expires_in en respuestas).
func (s *Service) AccessTTL() time.Duration { return s.accessTTL }

// RefreshTTL expone el TTL del refresh token (para Max-Age de la cookie).
func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }

// IssueAccessToken emite un access token para subject/userID.
func (s *Service) IssueAccessToken(subject, userID string) (string, error) {
	return s.issue(KindAccess, subject, userID, s.accessTTL)
}

// IssueRefreshToken emite un refresh token para subject/userID.
func (s *Service) IssueRefreshToken(subject, userID string) (string, error) {
	return s.issue(KindRefresh, subject, userID, s.refreshTTL)
}

// Issue emite un token de tipo y TTL arbitrarios. Los flujos normales usan
// IssueAccessToken/IssueRefreshToken; esto existe para herramientas y tests.
func (s *Service) Issue(kind Kind, subject, userID string, ttl time.Duration) (string, error) {
	return s.issue(kind, subject, userID, ttl)
}

func (s *Service) issue(kind Kind, subject, userID string, ttl time.Duration) (string, error) {
	// Validación eager: no diferir al firmado.
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(userID) == "" {
		return "", ErrInvalidSubject
	}

	now := time.Now().UTC()
	claims := jwtv5.MapClaims{
		"sub":        subject,
		"user_id":    userID,
		"token_type": string(kind),
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}

	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodRS256, claims)
	signed, err := tk.SignedString(s.keys.Private)
	if err != nil {
		return "", fmt.Errorf("token: firmando: %w", err)
	}
	metrics.TokenIssued(string(kind))
	return signed, nil
}

// Verify valida firma, expiración y tipo. Devuelve:
//   - ErrTokenExpired si exp quedó en el pasado
//   - ErrTokenTypeMismatch si token_type no es el esperado
//   - ErrTokenMalformed para cualquier otro fallo de firma/parseo
func (s *Service) Verify(raw string, expected Kind) (*Claims, error) {
	keyfunc := func(t *jwtv5.Token) (any, error) {
		return s.keys.Public, nil
	}

	// Sin validación de exp del parser: la chequeamos nosotros para poder
	// distinguir expiración de malformación.
	tok, err := jwtv5.Parse(raw, keyfunc,
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodRS256.Alg()}),
		jwtv5.WithoutClaimsValidation(),
	)
	if err != nil || !tok.Valid {
		return nil, ErrTokenMalformed
	}

	mc, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}

	c, err := claimsFromMap(mc)
	if err != nil {
		return nil, err
	}
	if time.Now().After(c.ExpiresAt) {
		return nil, ErrTokenExpired
	}
	if c.Kind != expected {
		return nil, ErrTokenTypeMismatch
	}
	return c, nil
}

// RotateAccessToken verifica el refresh y emite un access nuevo con el mismo
// subject/userID. Rotación one-way: acá jamás se re-emite un refresh; el
// refresh vive hasta su propia expiración, sin ventana deslizante.
func (s *Service) RotateAccessToken(refreshToken string) (string, error) {
	c, err := s.Verify(refreshToken, KindRefresh)
	if err != nil {
		return "", err
	}
	return s.issue(KindAccess, c.Subject, c.UserID, s.accessTTL)
}

func claimsFromMap(mc jwtv5.MapClaims) (*Claims, error) {
	sub, _ := mc["sub"].(string)
	uid, _ := mc["user_id"].(string)
	typ, _ := mc["token_type"].(string)
	if sub == "" || uid == "" || typ == "" {
		return nil, ErrTokenMalformed
	}

	expf, ok := mc["exp"].(float64)
	if !ok {
		return nil, ErrTokenMalformed
	}
	iatf, _ := mc["iat"].(float64)

	return &Claims{
		Subject:   sub,
		UserID:    uid,
		Kind:      Kind(typ),
		IssuedAt:  time.Unix(int64(iatf), 0).UTC(),
		ExpiresAt: time.Unix(int64(expf), 0).UTC(),
	}, nil
}
