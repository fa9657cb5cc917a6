package game

import "github.com/emiliskiskis/mafia-bot/internal/models"

// DefaultMaxPlayers is the roster size for a standard game.
const DefaultMaxPlayers = 9

// DefaultDistribution is the standard 9-player table: 4 town, 3 mafia,
// 2 neutral. Order matters; assignment walks it top to bottom.
var DefaultDistribution = []models.DistributionEntry{
	{Faction: models.FactionTown, Count: 4},
	{Faction: models.FactionMafia, Count: 3},
	{Faction: models.FactionNeutral, Count: 2},
}

// DefaultCatalog is the static role catalog roles are drawn from.
var DefaultCatalog = []models.Role{
	{Title: "Alchemist", Faction: models.FactionTown},
	{Title: "Banker", Faction: models.FactionTown},
	{Title: "Bodyguard", Faction: models.FactionTown},
	{Title: "Bus Driver", Faction: models.FactionTown},
	{Title: "Detective", Faction: models.FactionTown},
	{Title: "Doctor", Faction: models.FactionTown},
	{Title: "Escort", Faction: models.FactionTown},
	{Title: "Investigator", Faction: models.FactionTown},
	{Title: "Lookout", Faction: models.FactionTown},
	{Title: "Mayor", Faction: models.FactionTown},
	{Title: "Psychiatrist", Faction: models.FactionTown},
	{Title: "Sheriff", Faction: models.FactionTown},
	{Title: "Tracker", Faction: models.FactionTown},
	{Title: "Trainee", Faction: models.FactionTown},
	{Title: "Veteran", Faction: models.FactionTown},
	{Title: "Ambusher", Faction: models.FactionMafia},
	{Title: "Bankster", Faction: models.FactionMafia},
	{Title: "Blackmailer", Faction: models.FactionMafia},
	{Title: "Consigliere", Faction: models.FactionMafia},
	{Title: "Framer", Faction: models.FactionMafia},
	{Title: "Godfather", Faction: models.FactionMafia},
	{Title: "Hitman", Faction: models.FactionMafia},
	{Title: "Napalm", Faction: models.FactionMafia},
	{Title: "Shapeshifter", Faction: models.FactionMafia},
	{Title: "Sniper", Faction: models.FactionMafia},
	{Title: "Ventriloquist", Faction: models.FactionMafia},
	{Title: "Amnesiac", Faction: models.FactionNeutral},
	{Title: "Arsonist", Faction: models.FactionNeutral},
	{Title: "Cultist", Faction: models.FactionNeutral},
	{Title: "Cult Leader", Faction: models.FactionNeutral},
	{Title: "Disguiser", Faction: models.FactionNeutral},
	{Title: "Executioner", Faction: models.FactionNeutral},
	{Title: "Grinch", Faction: models.FactionNeutral},
	{Title: "Mime", Faction: models.FactionNeutral},
	{Title: "Negotiator", Faction: models.FactionNeutral},
	{Title: "Out of Towner", Faction: models.FactionNeutral},
	{Title: "Patient Zero", Faction: models.FactionNeutral},
	{Title: "Serial Killer", Faction: models.FactionNeutral},
	{Title: "Truth Seeker", Faction: models.FactionNeutral},
	{Title: "Twin", Faction: models.FactionNeutral},
	{Title: "Vampire", Faction: models.FactionNeutral},
	{Title: "Werewolf", Faction: models.FactionNeutral},
	{Title: "Witch", Faction: models.FactionNeutral},
	{Title: "Witch Doctor", Faction: models.FactionNeutral},
}

// investigationResults groups role titles into the vague hints an
// investigator receives about their target.
var investigationResults = []struct {
	result string
	roles  []string
}{
	{
		result: "Your target likes to bother people a lot...",
		roles:  []string{"Escort", "Witch", "Arsonist", "Blackmailer"},
	},
	{
		result: "Your target likes to work silently...",
		roles:  []string{"Lookout", "Grinch", "Investigator", "Truthseeker", "Hitman"},
	},
	{
		result: "Your target is out for vengeance...",
		roles:  []string{"Sheriff", "Ambusher", "Executioner", "Vampire", "Werewolf"},
	},
	{
		result: "Your target understands people very well...",
		roles:  []string{"Mayor", "Twin", "Consigliere", "Disguiser"},
	},
	{
		result: "Your target follows people around...",
		roles:  []string{"Sniper", "Ventriloquist", "Detective", "Patient Zero"},
	},
	{
		result: "Your target does things you don't understand...",
		roles:  []string{"Amnesiac", "Napalm", "Alchemist", "Framer", "Psychiatrist"},
	},
	{
		result: "Your target is always near others...",
		roles:  []string{"Bodyguard", "Cult Leader", "Negotiator"},
	},
	{
		result: "Your target knows how to get others' attention...",
		roles:  []string{"Godfather", "Cultist", "Doctor", "Veteran"},
	},
}

// InvestigationResult returns the hint text for a role title, or false when
// the title belongs to no hint bucket.
func InvestigationResult(roleTitle string) (string, bool) {
	for _, bucket := range investigationResults {
		for _, title := range bucket.roles {
			if title == roleTitle {
				return bucket.result, true
			}
		}
	}
	return "", false
}
