package loyalty

// Niveles de fidelidad.
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

// SignupBonus puntos acreditados al crear un usuario.
const SignupBonus = 50

// Tier umbral inferior (inclusive) de cada nivel.
type Tier struct {
	Name      string
	MinPoints int
}

// tiers ordenados por umbral ascendente.
var tiers = []Tier{
	{Name: TierBronze, MinPoints: 0},
	{Name: TierSilver, MinPoints: 500},
	{Name: TierGold, MinPoints: 1500},
	{Name: TierPlatinum, MinPoints: 3000},
}

// TierFor deriva el nivel a partir del saldo. Es función pura del saldo: nunca se persiste.
func TierFor(points int) string {
	name := TierBronze
	for _, t := range tiers {
		if points >= t.MinPoints {
			name = t.Name
		}
	}
	return name
}

// Progress calcula el siguiente nivel, los puntos faltantes y el porcentaje de avance
// dentro del nivel actual. En platino next es "" y el avance 100.
func Progress(points int) (next string, missing int, percent int) {
	if points < 0 {
		points = 0
	}
	current := tiers[0]
	for i, t := range tiers {
		if points < t.MinPoints {
			span := t.MinPoints - current.MinPoints
			return t.Name, t.MinPoints - points, (points - current.MinPoints) * 100 / span
		}
		current = tiers[i]
	}
	return "", 0, 100
}
