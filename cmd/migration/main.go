package main

import (
	"flag"
	"log"
	"os"

	"github.com/hugohenrick/sorveteria-pos/internal/infrastructure/database"
	"github.com/joho/godotenv"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	defaultPath := os.Getenv("MIGRATIONS_PATH")
	if defaultPath == "" {
		defaultPath = "migrations"
	}

	path := flag.String("path", defaultPath, "diretório com os arquivos de migração")
	down := flag.Int("down", 0, "quantidade de migrações a desfazer")
	flag.Parse()

	config := database.NewPostgresConfigFromEnv()

	if *down > 0 {
		if err := database.RollbackMigrations(config, *path, *down); err != nil {
			log.Fatalf("Erro ao desfazer migrações: %v", err)
		}
		log.Printf("%d migração(ões) desfeita(s)", *down)
		return
	}

	if err := database.RunMigrations(config, *path); err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}

	log.Println("Migrações executadas com sucesso!")
}
