package cubechess

import "sync"

const zobristRoles = 7 // Role 范围 [1..6]，0 保留空位不用

var (
	zobristOnce sync.Once

	zobristPieces [2][zobristRoles][NumSquares]uint64
	// 王/车是否动过会影响易位，单独一组键
	zobristMoved [NumSquares]uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for side := 0; side < 2; side++ {
			for r := 1; r < zobristRoles; r++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[side][r][sq] = next()
				}
			}
		}
		for sq := 0; sq < NumSquares; sq++ {
			zobristMoved[sq] = next()
		}
	})
}

func cellHashKey(c Cell, sq int) uint64 {
	if c.Empty() || sq < 0 || sq >= NumSquares {
		return 0
	}
	initZobrist()

	var sideIdx int
	switch c.Side {
	case White:
		sideIdx = 0
	case Black:
		sideIdx = 1
	default:
		return 0
	}

	r := int(c.Role)
	if r <= 0 || r >= zobristRoles {
		return 0
	}
	h := zobristPieces[sideIdx][r][sq]
	if c.Moved {
		h ^= zobristMoved[sq]
	}
	return h
}

// CalculateHash 全量计算当前棋盘的 Zobrist 哈希。
func (b *Board) CalculateHash() uint64 {
	var h uint64
	for sq := 0; sq < NumSquares; sq++ {
		h ^= cellHashKey(b.Cells[sq], sq)
	}
	return h
}

// EnsureHash 确保 Board.Hash 已初始化；返回当前哈希值。
func (b *Board) EnsureHash() uint64 {
	if b.Hash == 0 {
		b.Hash = b.CalculateHash()
	}
	return b.Hash
}

// setCell 写格子并增量更新哈希
func (b *Board) setCell(sq int, c Cell) {
	b.Hash ^= cellHashKey(b.Cells[sq], sq)
	b.Cells[sq] = c
	b.Hash ^= cellHashKey(c, sq)
}
