// Command posters seeds unregistered poster codes.
//
//	posters -n 50            generate 50 random codes
//	posters CODE1 CODE2 ...  insert the given codes
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/neoarcana-server/internal/config"
	"github.com/dtroode/neoarcana-server/internal/repository/postgres"
)

func main() {
	n := flag.Int("n", 0, "number of random codes to generate")
	prefix := flag.String("prefix", "NA", "prefix for generated codes")
	flag.Parse()

	codes := flag.Args()
	for range *n {
		codes = append(codes, newCode(*prefix))
	}
	if len(codes) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	ctx := context.Background()
	db, err := postgres.NewConection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer db.Close()

	posters := postgres.NewPosterRepository(db)
	for _, code := range codes {
		if err := posters.Create(ctx, code); err != nil {
			log.Fatalf("failed to create poster %s: %v", code, err)
		}
		fmt.Println(code)
	}
}

func newCode(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + strings.ToUpper(id[:10])
}
