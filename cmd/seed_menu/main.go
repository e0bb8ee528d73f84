// seed_menu genera el script SQL que puebla el menú (categorías, platos, variantes,
// personalizaciones) y las recompensas de fidelidad a partir de un archivo YAML.
//
// Uso: go run ./cmd/seed_menu [ruta/menu.yaml]
// Por defecto lee cmd/seed_menu/menu.yaml.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_menu.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	moduleRoot := findModuleRoot()
	yamlPath := filepath.Join(moduleRoot, "cmd", "seed_menu", "menu.yaml")
	if len(os.Args) > 1 {
		yamlPath = os.Args[1]
	}
	f, err := os.Open(yamlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir YAML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	menu, err := parseMenu(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Menú inválido: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_menu.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, menu); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}

	items := 0
	for _, c := range menu.Categories {
		items += len(c.Items)
	}
	fmt.Printf("Generado %s: %d categorías, %d platos, %d recompensas\n", outPath, len(menu.Categories), items, len(menu.Rewards))
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
