package domain

// Economy tuning values. Kept in one place so the balance of the whole
// coin economy is reviewable at a glance.
const (
	// StartingBalance is seeded into every new profile
	StartingBalance = 100

	// Bet stake bounds. The effective maximum is the lesser of
	// MaxBetAmount and the bettor's balance.
	MinBetAmount = 10
	MaxBetAmount = 1000

	// Daily bonus pays DailyBonusBase plus the claimant's level in coins
	DailyBonusBase = 5
	DailyBonusXP   = 5

	// Level N to N+1 requires LevelUpBaseXP + (N-1)*LevelUpStepXP XP.
	// Reaching level N pays N*LevelUpCoinsPerLevel coins.
	LevelUpBaseXP        = 100
	LevelUpStepXP        = 50
	LevelUpCoinsPerLevel = 20

	// Tournament rewards scale with field size
	ParticipationCoinsBase   = 15
	VictoryCoinsBase         = 75
	ParticipationCoinsMedium = 20
	VictoryCoinsMedium       = 100
	ParticipationCoinsLarge  = 25
	VictoryCoinsLarge        = 150
	TournamentMediumField    = 8
	TournamentLargeField     = 16
	ParticipationXP          = 10
	VictoryXP                = 50
)

// TournamentRewardCoins returns the participation and victory coin rewards
// for a tournament with the given number of participants.
func TournamentRewardCoins(participants int) (participation, victory int) {
	switch {
	case participants >= TournamentLargeField:
		return ParticipationCoinsLarge, VictoryCoinsLarge
	case participants >= TournamentMediumField:
		return ParticipationCoinsMedium, VictoryCoinsMedium
	default:
		return ParticipationCoinsBase, VictoryCoinsBase
	}
}
