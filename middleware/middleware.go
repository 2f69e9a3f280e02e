package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

func CorsMiddleware(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, KEY")
			if origin != "*" {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			// Responde diretamente as requisições OPTIONS (pré-flight)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			// Continua a cadeia de middlewares
			next.ServeHTTP(w, r)
		})
	}
}

// JWTMiddleware exige "Authorization: Bearer <token>" assinado com HS256.
// Com secret vazio a autenticação fica desligada.
func JWTMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		key := []byte(secret)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "Token não fornecido")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
				}
				return key, nil
			})
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Token inválido")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminKeyMiddleware compara o header KEY com o hash bcrypt configurado.
// Sem hash configurado a rota fica bloqueada.
func AdminKeyMiddleware(hash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authKey := r.Header.Get("KEY")
			if hash == "" || authKey == "" {
				writeError(w, http.StatusUnauthorized, "Chave de acesso inválida")
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(authKey)); err != nil {
				writeError(w, http.StatusUnauthorized, "Chave de acesso inválida")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}
