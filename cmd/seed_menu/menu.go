package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Espacio de nombres de los UUID deterministas del menú.
var menuNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("foodorder-api/menu"))

var (
	customizationCategories = map[string]bool{"sauce": true, "extra": true, "side": true}
	rewardTypes             = map[string]bool{"food": true, "discount": true, "delivery": true, "other": true}
)

type menuFile struct {
	Categories []categoryDef `yaml:"categories"`
	Rewards    []rewardDef   `yaml:"rewards"`
}

type categoryDef struct {
	Name  string    `yaml:"name"`
	Icon  string    `yaml:"icon"`
	Items []itemDef `yaml:"items"`
}

type itemDef struct {
	Name            string             `yaml:"name"`
	Description     string             `yaml:"description"`
	Price           int64              `yaml:"price"`
	Image           string             `yaml:"image"`
	Rating          float64            `yaml:"rating"`
	PreparationTime int                `yaml:"preparation_time"`
	OutOfStock      bool               `yaml:"out_of_stock"`
	Variants        []variantDef       `yaml:"variants"`
	Customizations  []customizationDef `yaml:"customizations"`
}

type variantDef struct {
	Name    string `yaml:"name"`
	Price   int64  `yaml:"price"`
	Default bool   `yaml:"default"`
}

type customizationDef struct {
	Name     string `yaml:"name"`
	Price    int64  `yaml:"price"`
	Free     bool   `yaml:"free"`
	Category string `yaml:"category"`
}

type rewardDef struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Cost        int    `yaml:"cost"`
	Type        string `yaml:"type"`
	Icon        string `yaml:"icon"`
}

// parseMenu decodifica y valida el YAML. Los textos se normalizan a NFC.
func parseMenu(r io.Reader) (*menuFile, error) {
	var m menuFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decodificar YAML: %w", err)
	}
	if err := m.normalize(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *menuFile) normalize() error {
	if len(m.Categories) == 0 {
		return fmt.Errorf("el menú no tiene categorías")
	}
	seenCat := make(map[string]bool)
	for ci := range m.Categories {
		cat := &m.Categories[ci]
		cat.Name = clean(cat.Name)
		if cat.Name == "" {
			return fmt.Errorf("categoría %d sin nombre", ci+1)
		}
		if seenCat[cat.Name] {
			return fmt.Errorf("categoría duplicada: %s", cat.Name)
		}
		seenCat[cat.Name] = true

		seenItem := make(map[string]bool)
		for ii := range cat.Items {
			it := &cat.Items[ii]
			it.Name = clean(it.Name)
			it.Description = clean(it.Description)
			if it.Name == "" {
				return fmt.Errorf("%s: plato %d sin nombre", cat.Name, ii+1)
			}
			if seenItem[it.Name] {
				return fmt.Errorf("%s: plato duplicado: %s", cat.Name, it.Name)
			}
			seenItem[it.Name] = true
			if it.Price < 0 {
				return fmt.Errorf("%s: precio negativo", it.Name)
			}
			if it.PreparationTime == 0 {
				it.PreparationTime = 15
			}
			if err := it.normalizeVariants(); err != nil {
				return err
			}
			for k := range it.Customizations {
				cu := &it.Customizations[k]
				cu.Name = clean(cu.Name)
				if cu.Category == "" {
					cu.Category = "extra"
				}
				if !customizationCategories[cu.Category] {
					return fmt.Errorf("%s: categoría de personalización inválida %q", it.Name, cu.Category)
				}
				if cu.Free {
					cu.Price = 0
				}
			}
		}
	}
	for i := range m.Rewards {
		rw := &m.Rewards[i]
		rw.Name = clean(rw.Name)
		rw.Description = clean(rw.Description)
		if rw.Name == "" || rw.Cost <= 0 {
			return fmt.Errorf("recompensa %d: nombre y costo positivo son requeridos", i+1)
		}
		if rw.Type == "" {
			rw.Type = "other"
		}
		if !rewardTypes[rw.Type] {
			return fmt.Errorf("%s: tipo de recompensa inválido %q", rw.Name, rw.Type)
		}
	}
	return nil
}

// normalizeVariants garantiza exactamente una variante por defecto (la primera si ninguna lo es).
func (it *itemDef) normalizeVariants() error {
	if len(it.Variants) == 0 {
		it.Variants = []variantDef{{Name: "Standard", Default: true}}
		return nil
	}
	defaults := 0
	for k := range it.Variants {
		it.Variants[k].Name = clean(it.Variants[k].Name)
		if it.Variants[k].Default {
			defaults++
		}
	}
	switch defaults {
	case 0:
		it.Variants[0].Default = true
	case 1:
	default:
		return fmt.Errorf("%s: más de una variante por defecto", it.Name)
	}
	return nil
}

// writeSQL escribe el script de carga. Reejecutarlo actualiza las mismas filas.
func writeSQL(w io.Writer, m *menuFile) error {
	b := &strings.Builder{}
	b.WriteString("-- Menú y recompensas\n")
	b.WriteString("-- Generado por cmd/seed_menu; no editar a mano.\n\n")

	for ci, cat := range m.Categories {
		catID := seedID("category", cat.Name)
		fmt.Fprintf(b, "-- %s\n", cat.Name)
		fmt.Fprintf(b, "INSERT INTO menu_categories (id, name, icon, display_order)\nVALUES ('%s', %s, %s, %d)\n",
			catID, quote(cat.Name), quote(cat.Icon), ci+1)
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, icon = EXCLUDED.icon, display_order = EXCLUDED.display_order;\n")

		for _, it := range cat.Items {
			itemID := seedID("item", cat.Name, it.Name)
			fmt.Fprintf(b, "INSERT INTO menu_items (id, name, description, category_id, base_price, image, in_stock, rating, preparation_time)\n")
			fmt.Fprintf(b, "VALUES ('%s', %s, %s, '%s', %s, %s, %t, %s, %d)\n",
				itemID, quote(it.Name), quote(it.Description), catID, money(it.Price), quote(it.Image),
				!it.OutOfStock, decimal.NewFromFloat(it.Rating).StringFixed(1), it.PreparationTime)
			b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description, " +
				"base_price = EXCLUDED.base_price, image = EXCLUDED.image, in_stock = EXCLUDED.in_stock, " +
				"rating = EXCLUDED.rating, preparation_time = EXCLUDED.preparation_time, updated_at = now();\n")

			// El índice parcial admite una sola variante por defecto: se limpia antes de reinsertar.
			fmt.Fprintf(b, "UPDATE menu_variants SET is_default = FALSE WHERE menu_item_id = '%s';\n", itemID)
			for _, v := range it.Variants {
				fmt.Fprintf(b, "INSERT INTO menu_variants (id, menu_item_id, name, price, is_default)\nVALUES ('%s', '%s', %s, %s, %t)\n",
					seedID("variant", cat.Name, it.Name, v.Name), itemID, quote(v.Name), money(v.Price), v.Default)
				b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price, is_default = EXCLUDED.is_default;\n")
			}
			for _, cu := range it.Customizations {
				fmt.Fprintf(b, "INSERT INTO menu_customizations (id, menu_item_id, name, price, is_free, category)\nVALUES ('%s', '%s', %s, %s, %t, '%s')\n",
					seedID("customization", cat.Name, it.Name, cu.Name), itemID, quote(cu.Name), money(cu.Price), cu.Free, cu.Category)
				b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price, is_free = EXCLUDED.is_free, category = EXCLUDED.category;\n")
			}
		}
		b.WriteString("\n")
	}

	if len(m.Rewards) > 0 {
		b.WriteString("-- Recompensas\n")
	}
	for _, rw := range m.Rewards {
		fmt.Fprintf(b, "INSERT INTO loyalty_rewards (id, name, description, points_cost, type, icon)\nVALUES ('%s', %s, %s, %d, '%s', %s)\n",
			seedID("reward", rw.Name), quote(rw.Name), quote(rw.Description), rw.Cost, rw.Type, quote(rw.Icon))
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description, " +
			"points_cost = EXCLUDED.points_cost, type = EXCLUDED.type, icon = EXCLUDED.icon;\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func seedID(kind string, names ...string) uuid.UUID {
	return uuid.NewSHA1(menuNamespace, []byte(kind+":"+strings.Join(names, "/")))
}

func clean(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

func quote(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func money(v int64) string {
	return decimal.NewFromInt(v).StringFixed(2)
}
