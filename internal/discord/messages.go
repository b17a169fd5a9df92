package discord

// Announcement message templates
const (
	MsgBadgeEarned   = "🏅 **%s** earned the **%s** badge (%s)!"
	MsgBetWon        = "💰 **%s** won **%d coins** betting on %s!"
	MsgMarketSettled = "🏁 **%s** is settled! Winner: **%s** (%d winning bets)"
	MsgLevelUp       = "⬆️ **%s** reached level **%d**!"
)
