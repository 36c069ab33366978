package main

import (
	"log"

	"cv-suite/internal/shared/config"
	"cv-suite/internal/shared/server"
)

func main() {
	cfg := config.Load()
	r := server.NewRouter(cfg)

	addr := server.Addr(cfg.Port)
	log.Printf("cv-suite api listening on %s (env=%s, llm=%s/%s)", addr, cfg.Env, cfg.LLMProvider, cfg.LLMModel)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
