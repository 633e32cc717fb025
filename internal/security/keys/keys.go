// Package keys carga el par de claves RSA con el que se firman los tokens.
// La privada firma, la pública verifica: cualquier servicio interno puede
// validar un token con solo la pública, sin acceso a la base ni al secreto.
//
// Las claves se cargan UNA vez al arranque y son inmutables por el resto
// del proceso. Si faltan o están corruptas el servicio no debe levantar.
package keys

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"os"
	"strings"
)

// KeyPair es el material de firma, solo lectura después de Load.
type KeyPair struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

// Source indica de dónde leer el material.
type Source struct {
	// PEMs sueltos (pkcs1/pkcs8 para la privada, pkix para la pública).
	PrivatePEMPath string
	PublicPEMPath  string

	// Alternativa: un único JSON {"privateKey": "...", "publicKey": "..."}
	// con los PEM embebidos, el formato que entrega el secret store.
	SecretJSONPath string
}

// Load lee y parsea el par según la fuente configurada.
// Cualquier error acá es fatal para el proceso: sin claves no hay servicio.
func Load(src Source) (*KeyPair, error) {
	var privPEM, pubPEM []byte

	switch {
	case src.SecretJSONPath != "":
		raw, err := os.ReadFile(src.SecretJSONPath)
		if err != nil {
			return nil, fmt.Errorf("keys: leyendo secret json: %w", err)
		}
		var doc struct {
			PrivateKey string `json:"privateKey"`
			PublicKey  string `json:"publicKey"`
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("keys: secret json inválido: %w", err)
		}
		privPEM, pubPEM = []byte(doc.PrivateKey), []byte(doc.PublicKey)

	case src.PrivatePEMPath != "" && src.PublicPEMPath != "":
		var err error
		if privPEM, err = os.ReadFile(src.PrivatePEMPath); err != nil {
			return nil, fmt.Errorf("keys: leyendo privada: %w", err)
		}
		if pubPEM, err = os.ReadFile(src.PublicPEMPath); err != nil {
			return nil, fmt.Errorf("keys: leyendo pública: %w", err)
		}

	default:
		return nil, fmt.Errorf("keys: fuente no configurada")
	}

	priv, err := ParsePrivatePEM(privPEM)
	if err != nil {
		return nil, err
	}
	pub, err := ParsePublicPEM(pubPEM)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Private: priv, Public: pub}, nil
}

// ParsePrivatePEM acepta PKCS#8 ("PRIVATE KEY") o PKCS#1 ("RSA PRIVATE KEY").
func ParsePrivatePEM(raw []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(normalizePEM(raw))
	if block == nil {
		return nil, fmt.Errorf("keys: PEM privado sin bloque válido")
	}
	switch block.Type {
	case "PRIVATE KEY":
		k, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("keys: pkcs8: %w", err)
		}
		rk, ok := k.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("keys: la privada no es RSA")
		}
		return rk, nil
	case "RSA PRIVATE KEY":
		rk, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("keys: pkcs1: %w", err)
		}
		return rk, nil
	default:
		return nil, fmt.Errorf("keys: tipo de bloque privado desconocido %q", block.Type)
	}
}

// ParsePublicPEM acepta PKIX ("PUBLIC KEY").
func ParsePublicPEM(raw []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(normalizePEM(raw))
	if block == nil {
		return nil, fmt.Errorf("keys: PEM público sin bloque válido")
	}
	k, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("keys: pkix: %w", err)
	}
	rk, ok := k.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("keys: la pública no es RSA")
	}
	return rk, nil
}

// normalizePEM tolera PEMs que llegan con "\n" literales (secret stores
// que guardan el PEM como string JSON de una línea).
func normalizePEM(raw []byte) []byte {
	s := string(raw)
	if strings.Contains(s, `\n`) && !strings.Contains(s, "\n") {
		s = strings.ReplaceAll(s, `\n`, "\n")
	}
	return []byte(s)
}
