package catalog

// UnknownRole is reported when no strategy can place a hero.
const UnknownRole = "Unknown"

// rolesByName is the static roster used when a hero document does not carry
// its class.
var rolesByName = map[string]string{
	"Bernheim": "Warrior",
	"Kasel":    "Warrior",
	"Gau":      "Warrior",
	"Naila":    "Warrior",
	"Ricardo":  "Warrior",
	"Mitra":    "Warrior",
	"Gladi":    "Warrior",
	"Scarlet":  "Warrior",

	"Cleo":     "Wizard",
	"Maria":    "Wizard",
	"Aisha":    "Wizard",
	"Pavel":    "Wizard",
	"Arch":     "Wizard",
	"Lorraine": "Wizard",
	"Theo":     "Wizard",
	"Artemia":  "Wizard",

	"Frey":      "Priest",
	"Kaulah":    "Priest",
	"Laias":     "Priest",
	"Rephy":     "Priest",
	"Annette":   "Priest",
	"Baudouin":  "Priest",
	"Shea":      "Priest",
	"Cassandra": "Priest",

	"Clause":  "Knight",
	"Phillop": "Knight",
	"Jane":    "Knight",
	"Morrah":  "Knight",
	"Sonia":   "Knight",
	"Demia":   "Knight",
	"Aselica": "Knight",
	"Cecilia": "Knight",

	"Cain":     "Assassin",
	"Roi":      "Assassin",
	"Epis":     "Assassin",
	"Tanya":    "Assassin",
	"Fluss":    "Assassin",
	"Ezekiel":  "Assassin",
	"Mirianne": "Assassin",

	"Luna":   "Archer",
	"Yanne":  "Archer",
	"Selene": "Archer",
	"Reina":  "Archer",

	"Lakrak": "Mechanic",
	"Rodina": "Mechanic",
	"Miruru": "Mechanic",
}

// RoleFor looks a hero up in the static roster only.
func RoleFor(name string) string {
	if role, ok := rolesByName[name]; ok {
		return role
	}
	return UnknownRole
}

// roleStrategy returns a role and true when it can decide one. doc is nil
// for heroes discovered without a definition file.
type roleStrategy func(doc *heroDocument, name string) (string, bool)

var roleStrategies = []roleStrategy{
	roleFromClass,
	roleFromRoleField,
	roleFromRoster,
}

func resolveRole(doc *heroDocument, name string) string {
	for _, strategy := range roleStrategies {
		if role, ok := strategy(doc, name); ok {
			return role
		}
	}
	return UnknownRole
}

func roleFromClass(doc *heroDocument, _ string) (string, bool) {
	if doc == nil || doc.Infos.Class == "" {
		return "", false
	}
	return doc.Infos.Class, true
}

func roleFromRoleField(doc *heroDocument, _ string) (string, bool) {
	if doc == nil || doc.Role == "" {
		return "", false
	}
	return doc.Role, true
}

func roleFromRoster(_ *heroDocument, name string) (string, bool) {
	role, ok := rolesByName[name]
	return role, ok
}
