// token выпускает JWT для клиентов API отчетов (дашборд, выгрузки).
//
//	JWT_SECRET=... go run ./cmd/token -subject dashboard -ttl 720h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/alligatorO15/fin-reports/internal/service"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	subject := flag.String("subject", "dashboard", "имя клиента в токене")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "срок действия токена")
	flag.Parse()

	_ = godotenv.Load()

	auth := service.NewAuthService(os.Getenv("JWT_SECRET"))
	token, expiresAt, err := auth.IssueToken(*subject, *ttl)
	if err != nil {
		logrus.Fatalf("Не удалось выпустить токен: %v", err)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "действует до %s\n", expiresAt.Format(time.RFC3339))
}
