package card

import "fmt"

// Card type tags as they appear in the card dump.
const (
	TypeMinion   = "MINION"
	TypeSpell    = "SPELL"
	TypeWeapon   = "WEAPON"
	TypeLocation = "LOCATION"
	TypeHero     = "HERO"
)

// CoinID is the string id of the bonus resource card granted to the second player.
const CoinID = "GAME_005"

// CoinDbfID is the numeric id of The Coin.
const CoinDbfID = 1746

// Card is a static card definition. Cards are never mutated once loaded and
// are shared by pointer between the hand, the deck and history snapshots.
type Card struct {
	ID        string `json:"id"`
	DbfID     int    `json:"dbfId"`
	Name      string `json:"name"`
	Cost      int    `json:"cost"`
	Rarity    string `json:"rarity,omitempty"`
	CardClass string `json:"cardClass,omitempty"`
	Type      string `json:"type,omitempty"`
	Text      string `json:"text,omitempty"`
}

func (c *Card) String() string {
	return fmt.Sprintf("%s (%d)", c.Name, c.Cost)
}

// IsCoin reports whether c is the bonus resource card in any language.
func (c *Card) IsCoin() bool {
	return c != nil && c.ID == CoinID
}

// Language selects card text and log messages.
type Language string

const (
	LangEN   Language = "en"
	LangZhTW Language = "zh-TW"
	LangZhCN Language = "zh-CN"
)

// Languages lists every supported language.
var Languages = []Language{LangEN, LangZhTW, LangZhCN}

// ParseLanguage accepts a language code or a card dump locale.
func ParseLanguage(s string) (Language, error) {
	switch s {
	case "", "en", "enUS":
		return LangEN, nil
	case "zh-TW", "zhTW":
		return LangZhTW, nil
	case "zh-CN", "zhCN":
		return LangZhCN, nil
	default:
		return "", fmt.Errorf("unsupported language %q", s)
	}
}

// Locale returns the card dump locale directory for the language.
func (l Language) Locale() string {
	switch l {
	case LangZhCN:
		return "zhCN"
	case LangZhTW:
		return "zhTW"
	default:
		return "enUS"
	}
}

var coins = map[Language]*Card{
	LangEN: {
		ID:        CoinID,
		DbfID:     CoinDbfID,
		Name:      "The Coin",
		Cost:      0,
		Rarity:    "COMMON",
		CardClass: "NEUTRAL",
		Type:      TypeSpell,
		Text:      "Gain 1 Mana Crystal this turn only.",
	},
	LangZhCN: {
		ID:        CoinID,
		DbfID:     CoinDbfID,
		Name:      "幸运币",
		Cost:      0,
		Rarity:    "COMMON",
		CardClass: "NEUTRAL",
		Type:      TypeSpell,
		Text:      "在本回合中，获得一个法力水晶。",
	},
	LangZhTW: {
		ID:        CoinID,
		DbfID:     CoinDbfID,
		Name:      "幸運幣",
		Cost:      0,
		Rarity:    "COMMON",
		CardClass: "NEUTRAL",
		Type:      TypeSpell,
		Text:      "本回合獲得一顆法力水晶。",
	},
}

// Coin returns the localized bonus resource card. Unknown languages get English.
func Coin(lang Language) *Card {
	if c, ok := coins[lang]; ok {
		return c
	}
	return coins[LangEN]
}
