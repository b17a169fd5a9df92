package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Core User Information
CREATE TABLE IF NOT EXISTS users (
    user_id VARCHAR(64) PRIMARY KEY,
    username VARCHAR(100) NOT NULL,
    is_admin BOOLEAN NOT NULL DEFAULT FALSE,
    registered_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- User Profiles (coins, XP, levels)
CREATE TABLE IF NOT EXISTS user_profiles (
    user_id VARCHAR(64) PRIMARY KEY REFERENCES users(user_id) ON DELETE CASCADE,
    username VARCHAR(100) NOT NULL,
    coins INTEGER NOT NULL DEFAULT 0 CHECK (coins >= 0),
    total_coins_earned INTEGER NOT NULL DEFAULT 0,
    total_coins_spent INTEGER NOT NULL DEFAULT 0,
    xp INTEGER NOT NULL DEFAULT 0,
    level INTEGER NOT NULL DEFAULT 1,
    last_daily_bonus TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Coin Ledger (append-only)
CREATE TABLE IF NOT EXISTS coin_transactions (
    transaction_id UUID PRIMARY KEY,
    user_id VARCHAR(64) NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    amount INTEGER NOT NULL,
    transaction_type VARCHAR(40) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    reference_id VARCHAR(100),
    balance_after INTEGER NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_coin_transactions_user ON coin_transactions(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_coin_transactions_type ON coin_transactions(transaction_type);

-- Betting Markets
CREATE TABLE IF NOT EXISTS betting_markets (
    market_id UUID PRIMARY KEY,
    tournament_id VARCHAR(100) NOT NULL,
    tournament_name VARCHAR(200) NOT NULL DEFAULT '',
    game VARCHAR(100) NOT NULL DEFAULT '',
    market_type VARCHAR(40) NOT NULL DEFAULT 'winner',
    title VARCHAR(200) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    options JSONB NOT NULL,
    total_pool INTEGER NOT NULL DEFAULT 0,
    status VARCHAR(20) NOT NULL DEFAULT 'open',
    closes_at TIMESTAMPTZ NOT NULL,
    settles_at TIMESTAMPTZ,
    winning_option VARCHAR(100),
    match_id VARCHAR(100),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_betting_markets_status ON betting_markets(status, closes_at);
CREATE INDEX IF NOT EXISTS idx_betting_markets_game ON betting_markets(game);

-- Bets
CREATE TABLE IF NOT EXISTS bets (
    bet_id UUID PRIMARY KEY,
    user_id VARCHAR(64) NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    username VARCHAR(100) NOT NULL DEFAULT '',
    market_id UUID NOT NULL REFERENCES betting_markets(market_id) ON DELETE CASCADE,
    option_id VARCHAR(100) NOT NULL,
    option_name VARCHAR(200) NOT NULL DEFAULT '',
    amount INTEGER NOT NULL CHECK (amount > 0),
    potential_payout INTEGER NOT NULL,
    odds DOUBLE PRECISION NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'active',
    placed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    settled_at TIMESTAMPTZ
);
-- One live bet per user per market; cancelled bets free the slot
CREATE UNIQUE INDEX IF NOT EXISTS idx_bets_one_per_market
    ON bets(user_id, market_id) WHERE status <> 'cancelled';
CREATE INDEX IF NOT EXISTS idx_bets_market ON bets(market_id, status);
CREATE INDEX IF NOT EXISTS idx_bets_user ON bets(user_id, placed_at DESC);

-- Earned Badges (definitions live in code)
CREATE TABLE IF NOT EXISTS user_badges (
    user_badge_id UUID PRIMARY KEY,
    user_id VARCHAR(64) NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    badge_id VARCHAR(100) NOT NULL,
    obtained_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    badge_count INTEGER NOT NULL DEFAULT 1,
    metadata JSONB,
    UNIQUE (user_id, badge_id)
);
CREATE INDEX IF NOT EXISTS idx_user_badges_badge ON user_badges(badge_id);

-- Marketplace Catalog
CREATE TABLE IF NOT EXISTS marketplace_items (
    item_id VARCHAR(100) PRIMARY KEY,
    item_name VARCHAR(200) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category VARCHAR(40) NOT NULL,
    price INTEGER NOT NULL CHECK (price >= 0),
    icon VARCHAR(100) NOT NULL DEFAULT '',
    stock INTEGER,
    available BOOLEAN NOT NULL DEFAULT TRUE,
    stackable BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- User Inventory
CREATE TABLE IF NOT EXISTS user_inventory (
    inventory_id UUID PRIMARY KEY,
    user_id VARCHAR(64) NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    item_id VARCHAR(100) NOT NULL REFERENCES marketplace_items(item_id) ON DELETE CASCADE,
    quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity > 0),
    acquired_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, item_id)
);

-- Public Activity Feed
CREATE TABLE IF NOT EXISTS activity_feed (
    activity_id UUID PRIMARY KEY,
    user_id VARCHAR(64) NOT NULL,
    username VARCHAR(100) NOT NULL DEFAULT '',
    activity_type VARCHAR(40) NOT NULL,
    message TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_activity_feed_created ON activity_feed(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_activity_feed_user ON activity_feed(user_id, created_at DESC);

-- Tournament Results (badge criteria and reward distribution source)
CREATE TABLE IF NOT EXISTS tournament_results (
    result_id UUID PRIMARY KEY,
    user_id VARCHAR(64) NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    tournament_id VARCHAR(100) NOT NULL,
    game VARCHAR(100) NOT NULL DEFAULT '',
    placement INTEGER NOT NULL,
    participants INTEGER NOT NULL DEFAULT 0,
    recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, tournament_id)
);
CREATE INDEX IF NOT EXISTS idx_tournament_results_user ON tournament_results(user_id);

-- Comments (social badge criteria source)
CREATE TABLE IF NOT EXISTS comments (
    comment_id UUID PRIMARY KEY,
    user_id VARCHAR(64) NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    subject VARCHAR(200) NOT NULL DEFAULT '',
    body TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_comments_user ON comments(user_id);

-- Login Days (streak badge criteria source, one row per UTC day)
CREATE TABLE IF NOT EXISTS login_days (
    user_id VARCHAR(64) NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    login_day DATE NOT NULL,
    PRIMARY KEY (user_id, login_day)
);
`
