package auth

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Set once from configuration at startup, before the router is built.
var (
	JwtSecret   []byte
	TokenIssuer string
)

// Context key under which AuthMiddleware stores the verified identity.
const UserNameKey = "user_name"

// GenerateToken signs a token carrying the userName claim. The server has
// no user registry; the claim itself is the identity.
func GenerateToken(userName string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userName": userName,
		"iss":      TokenIssuer,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	tokenString, err := token.SignedString(JwtSecret)
	if err != nil {
		log.Println("JWT SIGNING ERROR:", err)
		return "", err
	}
	return tokenString, nil
}

func ValidateJWT(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			log.Println("INVALID SIGNING METHOD")
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return JwtSecret, nil
	})
}

// AuthMiddleware verifies the Bearer token and stores the userName claim
// in the request context. Role decisions downstream only ever look at
// this verified value, never at client-supplied fields.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(401, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token, err := ValidateJWT(parts[1])
		if err != nil {
			log.Println("JWT PARSE ERROR:", err)
			c.JSON(401, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			c.JSON(401, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}
		userName, ok := claims["userName"].(string)
		if !ok || userName == "" {
			c.JSON(401, gin.H{"error": "Invalid userName in token"})
			c.Abort()
			return
		}

		c.Set(UserNameKey, userName)
		c.Next()
	}
}
