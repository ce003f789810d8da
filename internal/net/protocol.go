package net

const ProtocolVersion = 1

// Client → Server messages

type HelloMessage struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Version int    `json:"version"`
}

// PointerMessage carries the pointer's offset from the top of the
// surface, in field units.
type PointerMessage struct {
	Type string  `json:"type"`
	Y    float64 `json:"y"`
}

// Server → Client messages

type FieldInfo struct {
	W            float64 `json:"w"`
	H            float64 `json:"h"`
	PaddleWidth  float64 `json:"paddleWidth"`
	PaddleHeight float64 `json:"paddleHeight"`
	BallSize     float64 `json:"ballSize"`
}

type WelcomeMessage struct {
	Type   string    `json:"type"`
	GameID int       `json:"gameId"`
	Field  FieldInfo `json:"field"`
}

type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type SnapMessage struct {
	Type     string `json:"type"`
	Tick     uint32 `json:"tick"`
	Ball     Rect   `json:"ball"`
	Player   Rect   `json:"player"`
	Opponent Rect   `json:"opponent"`
}
