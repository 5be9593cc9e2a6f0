package web

import (
	"encoding/json"

	"github.com/samber/lo"

	"github.com/vovakirdan/merge2048/internal/games/t2048"
	"github.com/vovakirdan/merge2048/internal/games/t2048/engine"
)

// Message types on the wire.
const (
	typeMove  = "move"
	typeReset = "reset"
	typePing  = "ping"

	typeHello = "hello"
	typeFrame = "frame"
	typeError = "error"
	typePong  = "pong"
)

// Error codes sent in error messages.
const (
	codeBadJSON     = "BAD_JSON"
	codeBadDir      = "BAD_DIR"
	codeBadVariant  = "BAD_VARIANT"
	codeUnknownType = "UNKNOWN_TYPE"
	codeEngine      = "ENGINE"
)

// envelope is the {t, m} wrapper every message travels in.
type envelope struct {
	T string          `json:"t"`
	M json.RawMessage `json:"m,omitempty"`
}

type moveMsg struct {
	Dir string `json:"dir"`
}

type resetMsg struct {
	Variant string `json:"variant,omitempty"`
}

type helloMsg struct {
	Session  string   `json:"session"`
	Variant  string   `json:"variant"`
	Variants []string `json:"variants"`
}

type errorMsg struct {
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

type shapeMsg struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

type tileMsg struct {
	ID     int    `json:"id"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Value  int    `json:"value"`
	Number int    `json:"number"`
	Merged bool   `json:"merged,omitempty"`
	Anim   string `json:"anim,omitempty"`
}

type frameMsg struct {
	Tiles []tileMsg `json:"tiles"`
	Lost  bool      `json:"lost"`
	Score int       `json:"score"`
	Shape shapeMsg  `json:"shape"`
	Moves int       `json:"moves"`
	Phase string    `json:"phase"`
}

func newFrameMsg(f t2048.Frame) frameMsg {
	return frameMsg{
		Tiles: lo.Map(f.Tiles, func(t engine.Tile, _ int) tileMsg {
			return tileMsg{
				ID:     t.ID,
				Row:    t.Pos.Row,
				Col:    t.Pos.Col,
				Value:  t.Value,
				Number: t.Number(),
				Merged: t.Merged,
				Anim:   t.Animation.String(),
			}
		}),
		Lost:  f.Lost,
		Score: f.Score,
		Shape: shapeMsg{Rows: f.Shape.Rows, Cols: f.Shape.Cols},
		Moves: f.Moves,
		Phase: f.Phase.String(),
	}
}

// encode wraps payload in an envelope of type t.
func encode(t string, payload any) ([]byte, error) {
	env := envelope{T: t}
	if payload != nil {
		m, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.M = m
	}
	return json.Marshal(env)
}
