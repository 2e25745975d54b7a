package cubechess

type Side int8

const (
	NoSide Side = -1
	White  Side = 0
	Black  Side = 1
)

func (s Side) String() string {
	switch s {
	case White:
		return "WHITE"
	case Black:
		return "BLACK"
	default:
		return "NONE"
	}
}

// Opposite 返回对方；NoSide 保持不变
func (s Side) Opposite() Side {
	switch s {
	case White:
		return Black
	case Black:
		return White
	}
	return NoSide
}

type Role int8

const (
	RoleNone Role = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

var roleNames = [...]string{"None", "Pawn", "Rook", "Knight", "Bishop", "Queen", "King"}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "Unknown"
	}
	return roleNames[r]
}

// CanPromoteTo 升变只允许车马象后
func (r Role) CanPromoteTo() bool {
	switch r {
	case Rook, Knight, Bishop, Queen:
		return true
	}
	return false
}

// Cell 是棋盘上的一个格子；Role == RoleNone 表示空位，此时其余字段无意义。
type Cell struct {
	Role  Role
	Side  Side
	Moved bool
}

func (c Cell) Empty() bool { return c.Role == RoleNone }

// Coord 三维坐标，z 为层。
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Piece 是值类型：同一颗棋子在不同局面里互不共享。
type Piece struct {
	Role  Role `json:"role"`
	Side  Side `json:"side"`
	X     int  `json:"x"`
	Y     int  `json:"y"`
	Z     int  `json:"z"`
	Moved bool `json:"moved"`
}

func (p Piece) At() Coord { return Coord{X: p.X, Y: p.Y, Z: p.Z} }

func (p Piece) cell() Cell { return Cell{Role: p.Role, Side: p.Side, Moved: p.Moved} }

type CastleSide int8

const (
	NoCastle CastleSide = iota
	KingSide
	QueenSide
)

type Move struct {
	To      Coord      `json:"to"`
	Capture bool       `json:"capture"`
	Castle  CastleSide `json:"castle,omitempty"`
}

// PendingPromotion 兵到底线后等待选择升变棋子
type PendingPromotion struct {
	Piece Piece `json:"piece"`
	To    Coord `json:"to"`
}

// Effects 是走子附带的结果。Winner 为 NoSide 表示没有分出胜负。
type Effects struct {
	Captured  *Piece
	Winner    Side
	Promotion *PendingPromotion
}

func noEffects() Effects { return Effects{Winner: NoSide} }
