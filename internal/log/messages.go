package log

import (
	"strings"

	"github.com/peterkuimelis/mullsim/internal/card"
)

// MsgKey names a localized message template.
type MsgKey string

const (
	MsgStartFirst    MsgKey = "msg_start_first"
	MsgStartSecond   MsgKey = "msg_start_second"
	MsgMulliganDone  MsgKey = "msg_mulligan_done"
	MsgStartTurn     MsgKey = "msg_start_turn"
	MsgDraw          MsgKey = "msg_draw"
	MsgDrawType      MsgKey = "msg_draw_type"
	MsgPlay          MsgKey = "msg_play"
	MsgShuffle       MsgKey = "msg_shuffle"
	MsgSwap          MsgKey = "msg_swap"
	MsgDiscover      MsgKey = "msg_discover"
	MsgDiscoverType  MsgKey = "msg_discover_type"
	MsgDiscoverCopy  MsgKey = "msg_discover_copy"
	MsgDredge        MsgKey = "msg_dredge"
	MsgFracking      MsgKey = "msg_fracking"
	MsgWaveshape     MsgKey = "msg_waveshape"
	MsgPickTwo       MsgKey = "msg_pick_two_step1"
	MsgPickRemaining MsgKey = "msg_pick_two_step2"
	MsgDiscard       MsgKey = "msg_discard"
	MsgDestroy       MsgKey = "msg_destroy"
	MsgSearch        MsgKey = "msg_search"
	MsgSink          MsgKey = "msg_sink"
	MsgNoType        MsgKey = "msg_no_type"
	MsgInvalidDeck   MsgKey = "msg_invalid_deck"
	MsgDBError       MsgKey = "msg_db_error"

	ModalDiscover          MsgKey = "modal_discover"
	ModalDiscoverDesc      MsgKey = "modal_discover_desc"
	ModalDredge            MsgKey = "modal_dredge"
	ModalDredgeDesc        MsgKey = "modal_dredge_desc"
	ModalFracking          MsgKey = "modal_fracking"
	ModalFrackingDesc      MsgKey = "modal_fracking_desc"
	ModalWaveshaping       MsgKey = "modal_waveshaping"
	ModalWaveshapingDesc   MsgKey = "modal_waveshaping_desc"
	ModalPickTwo           MsgKey = "modal_pick_two"
	ModalPickTwoDesc       MsgKey = "modal_pick_two_desc"
	ModalPickRemaining     MsgKey = "modal_pick_remaining"
	ModalPickRemainingDesc MsgKey = "modal_pick_remaining_desc"

	LabelSelect  MsgKey = "select"
	LabelAddCopy MsgKey = "btn_add_copy"
)

var messages = map[card.Language]map[MsgKey]string{
	card.LangEN: {
		MsgStartFirst:    "You are going first.",
		MsgStartSecond:   "You are going second.",
		MsgMulliganDone:  "Mulligan done: kept {kept}, swapped {swapped}.",
		MsgStartTurn:     "Turn {turn} begins.",
		MsgDraw:          "Drew {card}.",
		MsgDrawType:      "Drew a {type}: {card}.",
		MsgPlay:          "Played {card} ({cost}).",
		MsgShuffle:       "Shuffled the deck.",
		MsgSwap:          "Swapped {count} card(s) with the bottom of the deck.",
		MsgDiscover:      "Discovered {card}.",
		MsgDiscoverType:  "Discovered a {type}: {card}.",
		MsgDiscoverCopy:  "Added a copy of {card} to hand.",
		MsgDredge:        "Dredged {card} to the top of the deck.",
		MsgFracking:      "Fracked {card}; the other examined cards were destroyed.",
		MsgWaveshape:     "Took {card}; the others went to the bottom of the deck.",
		MsgPickTwo:       "Picked {card} (first pick).",
		MsgPickRemaining: "Picked {card} (second pick).",
		MsgDiscard:       "Discarded {card}.",
		MsgDestroy:       "Destroyed {card} in the deck.",
		MsgSearch:        "Searched {card} into hand.",
		MsgSink:          "Put {card} on the bottom of the deck.",
		MsgNoType:        "No {type} left in the deck.",
		MsgInvalidDeck:   "Invalid deck code.",
		MsgDBError:       "Could not load card data.",

		ModalDiscover:          "Discover",
		ModalDiscoverDesc:      "Choose a card from your deck, or add a copy of it.",
		ModalDredge:            "Dredge",
		ModalDredgeDesc:        "Look at the bottom 3 cards. Put one on top.",
		ModalFracking:          "Fracking",
		ModalFrackingDesc:      "Look at the bottom 3 cards. Draw one and destroy the others.",
		ModalWaveshaping:       "Waveshaping",
		ModalWaveshapingDesc:   "Choose a card from your deck. The others go to the bottom.",
		ModalPickTwo:           "Pick Two",
		ModalPickTwoDesc:       "Choose a card from your deck.",
		ModalPickRemaining:     "Pick Again",
		ModalPickRemainingDesc: "Choose one of the remaining cards.",

		LabelSelect:  "Select",
		LabelAddCopy: "Add Copy",

		"type_minion":   "minion",
		"type_spell":    "spell",
		"type_weapon":   "weapon",
		"type_location": "location",
		"type_hero":     "hero",
	},
	card.LangZhTW: {
		MsgStartFirst:    "你是先手。",
		MsgStartSecond:   "你是後手。",
		MsgMulliganDone:  "換牌完成：保留 {kept} 張，替換 {swapped} 張。",
		MsgStartTurn:     "第 {turn} 回合開始。",
		MsgDraw:          "抽到 {card}。",
		MsgDrawType:      "抽出一張{type}：{card}。",
		MsgPlay:          "使用 {card}（{cost}）。",
		MsgShuffle:       "洗牌。",
		MsgSwap:          "與牌庫底交換了 {count} 張牌。",
		MsgDiscover:      "發現 {card}。",
		MsgDiscoverType:  "發現一張{type}：{card}。",
		MsgDiscoverCopy:  "將一張 {card} 的複製加入手牌。",
		MsgDredge:        "挖掘：將 {card} 置於牌庫頂。",
		MsgFracking:      "水力壓裂：抽到 {card}，其餘被摧毀。",
		MsgWaveshape:     "塑浪：取得 {card}，其餘置於牌庫底。",
		MsgPickTwo:       "選擇 {card}（第一張）。",
		MsgPickRemaining: "選擇 {card}（第二張）。",
		MsgDiscard:       "棄掉 {card}。",
		MsgDestroy:       "摧毀牌庫中的 {card}。",
		MsgSearch:        "從牌庫搜尋 {card} 到手牌。",
		MsgSink:          "將 {card} 置於牌庫底。",
		MsgNoType:        "牌庫中沒有{type}。",
		MsgInvalidDeck:   "無效的牌組代碼。",
		MsgDBError:       "無法載入卡牌資料。",

		ModalDiscover:          "發現",
		ModalDiscoverDesc:      "從牌庫選擇一張牌，或加入其複製。",
		ModalDredge:            "挖掘",
		ModalDredgeDesc:        "檢視牌庫底 3 張牌，將一張置於牌庫頂。",
		ModalFracking:          "水力壓裂",
		ModalFrackingDesc:      "檢視牌庫底 3 張牌，抽一張並摧毀其餘。",
		ModalWaveshaping:       "塑浪",
		ModalWaveshapingDesc:   "從牌庫選擇一張牌，其餘置於牌庫底。",
		ModalPickTwo:           "選二",
		ModalPickTwoDesc:       "從牌庫選擇一張牌。",
		ModalPickRemaining:     "再選一張",
		ModalPickRemainingDesc: "從剩下的牌中選擇一張。",

		LabelSelect:  "選擇",
		LabelAddCopy: "加入複製",

		"type_minion":   "手下",
		"type_spell":    "法術",
		"type_weapon":   "武器",
		"type_location": "地標",
		"type_hero":     "英雄",
	},
	card.LangZhCN: {
		MsgStartFirst:    "你是先手。",
		MsgStartSecond:   "你是后手。",
		MsgMulliganDone:  "换牌完成：保留 {kept} 张，替换 {swapped} 张。",
		MsgStartTurn:     "第 {turn} 回合开始。",
		MsgDraw:          "抽到 {card}。",
		MsgDrawType:      "抽出一张{type}：{card}。",
		MsgPlay:          "使用 {card}（{cost}）。",
		MsgShuffle:       "洗牌。",
		MsgSwap:          "与牌库底交换了 {count} 张牌。",
		MsgDiscover:      "发现 {card}。",
		MsgDiscoverType:  "发现一张{type}：{card}。",
		MsgDiscoverCopy:  "将一张 {card} 的复制置入手牌。",
		MsgDredge:        "探底：将 {card} 置于牌库顶。",
		MsgFracking:      "水力压裂：抽到 {card}，其余被摧毁。",
		MsgWaveshape:     "塑浪：获得 {card}，其余置于牌库底。",
		MsgPickTwo:       "选择 {card}（第一张）。",
		MsgPickRemaining: "选择 {card}（第二张）。",
		MsgDiscard:       "弃掉 {card}。",
		MsgDestroy:       "摧毁牌库中的 {card}。",
		MsgSearch:        "从牌库检索 {card} 到手牌。",
		MsgSink:          "将 {card} 置于牌库底。",
		MsgNoType:        "牌库中没有{type}。",
		MsgInvalidDeck:   "无效的卡组代码。",
		MsgDBError:       "无法加载卡牌数据。",

		ModalDiscover:          "发现",
		ModalDiscoverDesc:      "从牌库选择一张牌，或置入其复制。",
		ModalDredge:            "探底",
		ModalDredgeDesc:        "检视牌库底 3 张牌，将一张置于牌库顶。",
		ModalFracking:          "水力压裂",
		ModalFrackingDesc:      "检视牌库底 3 张牌，抽一张并摧毁其余。",
		ModalWaveshaping:       "塑浪",
		ModalWaveshapingDesc:   "从牌库选择一张牌，其余置于牌库底。",
		ModalPickTwo:           "选二",
		ModalPickTwoDesc:       "从牌库选择一张牌。",
		ModalPickRemaining:     "再选一张",
		ModalPickRemainingDesc: "从剩下的牌中选择一张。",

		LabelSelect:  "选择",
		LabelAddCopy: "置入复制",

		"type_minion":   "随从",
		"type_spell":    "法术",
		"type_weapon":   "武器",
		"type_location": "地标",
		"type_hero":     "英雄",
	},
}

// Text returns the template for key, falling back to English and then to the
// key itself.
func Text(lang card.Language, key MsgKey) string {
	if s, ok := messages[lang][key]; ok {
		return s
	}
	if s, ok := messages[card.LangEN][key]; ok {
		return s
	}
	return string(key)
}

// Render fills a template. args are placeholder/value pairs: "card", "Fireball".
func Render(lang card.Language, key MsgKey, args ...string) string {
	tmpl := Text(lang, key)
	if len(args) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, "{"+args[i]+"}", args[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// TypeName localizes a card type tag such as "MINION".
func TypeName(lang card.Language, cardType string) string {
	return Text(lang, MsgKey("type_"+strings.ToLower(cardType)))
}
