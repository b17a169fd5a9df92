package marketplace

// Transaction descriptions
const (
	DescPurchase = "Marketplace purchase: "
)

// Log messages
const (
	LogMsgItemCreated   = "Marketplace item created"
	LogMsgItemPurchased = "Marketplace item purchased"
)
