package cubechess

import (
	"fmt"
	"strings"
	"unicode"
)

// Encode 类 FEN 文本：z=0..7 八层用“|”隔开，每层 y=0..7 八行用“/”隔开，
// 空位用数字压缩；大写白、小写黑；字母后跟“*”表示这颗子动过。
func (b *Board) Encode() string {
	var sb strings.Builder
	for z := 0; z < Size; z++ {
		if z > 0 {
			sb.WriteByte('|')
		}
		for y := 0; y < Size; y++ {
			if y > 0 {
				sb.WriteByte('/')
			}
			empty := 0
			for x := 0; x < Size; x++ {
				c := b.Cells[indexOf(x, y, z)]
				if c.Empty() {
					empty++
					continue
				}
				if empty > 0 {
					sb.WriteByte(byte('0' + empty))
					empty = 0
				}
				sb.WriteRune(cellToChar(c))
				if c.Moved {
					sb.WriteByte('*')
				}
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
			}
		}
	}
	return sb.String()
}

func DecodeBoard(s string) (*Board, error) {
	layers := strings.Split(strings.TrimSpace(s), "|")
	if len(layers) != Size {
		return nil, fmt.Errorf("%w: want %d layers, got %d", ErrInvalidEncoding, Size, len(layers))
	}
	var b Board
	for z, layer := range layers {
		rows := strings.Split(layer, "/")
		if len(rows) != Size {
			return nil, fmt.Errorf("%w: layer %d has %d rows", ErrInvalidEncoding, z, len(rows))
		}
		for y, row := range rows {
			x := 0
			last := -1
			for _, ch := range row {
				if ch == '*' {
					if last < 0 {
						return nil, fmt.Errorf("%w: dangling '*' in layer %d row %d", ErrInvalidEncoding, z, y)
					}
					b.Cells[last].Moved = true
					last = -1
					continue
				}
				last = -1
				if x >= Size {
					return nil, fmt.Errorf("%w: layer %d row %d too long", ErrInvalidEncoding, z, y)
				}
				if ch >= '1' && ch <= '8' {
					x += int(ch - '0')
					continue
				}
				role, ok := letterToRole[unicode.ToLower(ch)]
				if !ok {
					return nil, fmt.Errorf("%w: unknown piece letter %q", ErrInvalidEncoding, ch)
				}
				side := Black
				if unicode.IsUpper(ch) {
					side = White
				}
				sq := indexOf(x, y, z)
				b.Cells[sq] = Cell{Role: role, Side: side}
				last = sq
				x++
			}
			if x != Size {
				return nil, fmt.Errorf("%w: layer %d row %d has %d cells", ErrInvalidEncoding, z, y, x)
			}
		}
	}
	b.Hash = b.CalculateHash()
	return &b, nil
}
