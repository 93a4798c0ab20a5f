package main

import (
	"os"

	"gopkg.in/yaml.v2"

	"sieteymedio/internal/config"
)

func main() {
	cfg := config.DefaultConfig()
	cfg.Players = []string{"player1", "player2", "player3"}

	if err := yaml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
		panic(err)
	}
}
