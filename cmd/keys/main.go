// Comando keys genera el material de firma RSA del servicio.
// Escribe el par en PEM (PKCS#8 / PKIX) o como documento JSON con el
// formato que consume el secret store.
package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func main() {
	var (
		bits    int
		outDir  string
		asJSON  bool
		private string
		public  string
	)

	root := &cobra.Command{
		Use:   "keys",
		Short: "Genera el par de claves RSA para la firma de tokens",
		RunE: func(_ *cobra.Command, _ []string) error {
			if bits < 2048 {
				return fmt.Errorf("el tamaño mínimo de clave es 2048 bits")
			}
			key, err := rsa.GenerateKey(rand.Reader, bits)
			if err != nil {
				return fmt.Errorf("generando clave: %w", err)
			}

			privPEM, pubPEM, err := encodePEM(key)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o700); err != nil {
				return err
			}

			if asJSON {
				doc, err := json.MarshalIndent(map[string]string{
					"privateKey": string(privPEM),
					"publicKey":  string(pubPEM),
				}, "", "  ")
				if err != nil {
					return err
				}
				path := filepath.Join(outDir, "jwt-keypair.json")
				if err := os.WriteFile(path, doc, 0o600); err != nil {
					return err
				}
				fmt.Printf("OK %s\n", path)
				return nil
			}

			privPath := filepath.Join(outDir, private)
			pubPath := filepath.Join(outDir, public)
			if err := os.WriteFile(privPath, privPEM, 0o600); err != nil {
				return err
			}
			if err := os.WriteFile(pubPath, pubPEM, 0o644); err != nil {
				return err
			}
			fmt.Printf("OK %s\nOK %s\n", privPath, pubPath)
			return nil
		},
	}

	root.Flags().IntVar(&bits, "bits", 2048, "tamaño de la clave RSA")
	root.Flags().StringVar(&outDir, "out", "configs/keys", "directorio de salida")
	root.Flags().BoolVar(&asJSON, "json", false, "emitir documento JSON en lugar de PEM sueltos")
	root.Flags().StringVar(&private, "private", "jwt_private.pem", "nombre del PEM privado")
	root.Flags().StringVar(&public, "public", "jwt_public.pem", "nombre del PEM público")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func encodePEM(key *rsa.PrivateKey) (privPEM, pubPEM []byte, err error) {
	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, nil, fmt.Errorf("serializando clave privada: %w", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("serializando clave pública: %w", err)
	}
	privPEM = pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})
	pubPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	return privPEM, pubPEM, nil
}
