package cubechess

// 马：一个轴走 2、另一个轴走 1、剩下的轴不动，共 6 种轴分配 × 4 种符号 = 24 个落点。
var knightOffsets = buildKnightOffsets()

func buildKnightOffsets() []direction {
	axes := [6][3]int{
		{2, 1, 0}, {2, 0, 1},
		{1, 2, 0}, {0, 2, 1},
		{1, 0, 2}, {0, 1, 2},
	}
	out := make([]direction, 0, 24)
	for _, a := range axes {
		for _, s1 := range [2]int{+1, -1} {
			for _, s2 := range [2]int{+1, -1} {
				var v [3]int
				signs := [2]int{s1, s2}
				k := 0
				for i, m := range a {
					if m == 0 {
						continue
					}
					v[i] = m * signs[k]
					k++
				}
				out = append(out, direction{v[0], v[1], v[2]})
			}
		}
	}
	return out
}

// 马跳不看中间格
func genKnightMoves(b *Board, pc Piece, moves *[]Move) {
	for _, d := range knightOffsets {
		x, y, z := pc.X+d.Dx, pc.Y+d.Dy, pc.Z+d.Dz
		if !onBoard(x, y, z) {
			continue
		}
		dst := b.Cells[indexOf(x, y, z)]
		if dst.Empty() {
			*moves = append(*moves, Move{To: Coord{x, y, z}})
		} else if dst.Side != pc.Side {
			*moves = append(*moves, Move{To: Coord{x, y, z}, Capture: true})
		}
	}
}
