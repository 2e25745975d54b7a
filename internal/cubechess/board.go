package cubechess

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	Size       = 8
	NumSquares = Size * Size * Size
)

type Board struct {
	Cells [NumSquares]Cell
	Hash  uint64
}

func indexOf(x, y, z int) int { return x + y*Size + z*Size*Size }

func coordOf(sq int) Coord {
	return Coord{X: sq % Size, Y: (sq / Size) % Size, Z: sq / (Size * Size)}
}

func onBoard(x, y, z int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size && z >= 0 && z < Size
}

// InBounds 判断坐标是否在 [0,Size)³ 内
func (c Coord) InBounds() bool { return onBoard(c.X, c.Y, c.Z) }

// 兵沿 z 轴前进：白 +1，黑 -1
func pawnDir(side Side) int {
	switch side {
	case White:
		return +1
	case Black:
		return -1
	}
	return 0
}

// 兵的起始层，可以走两格
func pawnStartRank(side Side) int {
	if side == White {
		return 1
	}
	return Size - 2
}

// 兵的底线层，到达即升变
func promotionRank(side Side) int {
	if side == White {
		return Size - 1
	}
	return 0
}

var letterToRole = map[rune]Role{
	'p': Pawn,
	'r': Rook,
	'n': Knight,
	'b': Bishop,
	'q': Queen,
	'k': King,
}

func roleLetter(r Role) rune {
	for k, v := range letterToRole {
		if v == r {
			return k
		}
	}
	return 0
}

func cellToChar(c Cell) rune {
	if c.Empty() {
		return '.'
	}
	ch := roleLetter(c.Role)
	if ch == 0 {
		return '.'
	}
	if c.Side == White {
		return unicode.ToUpper(ch)
	}
	return ch
}

// 大子层（z=0 白，z=7 黑）的摆法，第 y 行第 x 列。
// 两方大子层完全一样，王都在 (4,0)。
const majorLayerString = `RNBQKBNR
NB....BN
B......B
R......R
R......R
B......B
NB....BN
RNBQQBNR`

func parseMajorLayer() [Size][Size]Role {
	var layer [Size][Size]Role
	lines := make([]string, 0, Size)
	for _, line := range strings.Split(majorLayerString, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) != Size {
		panic("majorLayerString 行数不为 8")
	}
	for y := 0; y < Size; y++ {
		if len(lines[y]) != Size {
			panic("majorLayerString 列数不为 8")
		}
		for x, ch := range lines[y] {
			if ch == '.' {
				continue
			}
			role, ok := letterToRole[unicode.ToLower(ch)]
			if !ok {
				panic("unknown piece letter: " + string(ch))
			}
			layer[y][x] = role
		}
	}
	return layer
}

// NewInitialBoard 生成开局摆法：
// z=0 白大子，z=1 白兵，z=6 黑兵，z=7 黑大子，中间四层为空。
// 每次调用返回独立的新棋盘。
func NewInitialBoard() *Board {
	b := &Board{}
	major := parseMajorLayer()
	place := func(z int, side Side) {
		for y := 0; y < Size; y++ {
			for x := 0; x < Size; x++ {
				if role := major[y][x]; role != RoleNone {
					b.Cells[indexOf(x, y, z)] = Cell{Role: role, Side: side}
				}
			}
		}
	}
	pawns := func(z int, side Side) {
		for y := 0; y < Size; y++ {
			for x := 0; x < Size; x++ {
				b.Cells[indexOf(x, y, z)] = Cell{Role: Pawn, Side: side}
			}
		}
	}
	place(0, White)
	pawns(pawnStartRank(White), White)
	pawns(pawnStartRank(Black), Black)
	place(Size-1, Black)

	b.Hash = b.CalculateHash()
	return b
}

// OccupantAt 返回 (x,y,z) 上的棋子；空位返回 nil。越界返回 ErrOutOfBounds。
func (b *Board) OccupantAt(x, y, z int) (*Piece, error) {
	if !onBoard(x, y, z) {
		return nil, fmt.Errorf("%w: (%d,%d,%d)", ErrOutOfBounds, x, y, z)
	}
	pc, ok := b.pieceAt(indexOf(x, y, z))
	if !ok {
		return nil, nil
	}
	return &pc, nil
}

func (b *Board) pieceAt(sq int) (Piece, bool) {
	c := b.Cells[sq]
	if c.Empty() {
		return Piece{}, false
	}
	at := coordOf(sq)
	return Piece{Role: c.Role, Side: c.Side, X: at.X, Y: at.Y, Z: at.Z, Moved: c.Moved}, true
}

// Pieces 按格子下标顺序列出 side 一方的所有棋子；side 为 NoSide 时列出全部。
func (b *Board) Pieces(side Side) []Piece {
	var out []Piece
	for sq := 0; sq < NumSquares; sq++ {
		pc, ok := b.pieceAt(sq)
		if !ok {
			continue
		}
		if side != NoSide && pc.Side != side {
			continue
		}
		out = append(out, pc)
	}
	return out
}

func (b *Board) KingExists(side Side) bool {
	for _, c := range b.Cells {
		if c.Role == King && c.Side == side {
			return true
		}
	}
	return false
}
