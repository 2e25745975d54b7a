package cubechess

func genPawnMoves(b *Board, pc Piece, moves *[]Move) {
	dz := pawnDir(pc.Side)
	if dz == 0 {
		return
	}

	// 前进一格 / 起始层两格，都只能走空格
	z1 := pc.Z + dz
	if onBoard(pc.X, pc.Y, z1) && b.Cells[indexOf(pc.X, pc.Y, z1)].Empty() {
		*moves = append(*moves, Move{To: Coord{pc.X, pc.Y, z1}})

		z2 := pc.Z + 2*dz
		if pc.Z == pawnStartRank(pc.Side) && onBoard(pc.X, pc.Y, z2) &&
			b.Cells[indexOf(pc.X, pc.Y, z2)].Empty() {
			*moves = append(*moves, Move{To: Coord{pc.X, pc.Y, z2}})
		}
	}

	// 吃子：前进方向上 (dx,dy) 八个斜格，只能吃不能走
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x, y := pc.X+dx, pc.Y+dy
			if !onBoard(x, y, z1) {
				continue
			}
			dst := b.Cells[indexOf(x, y, z1)]
			if !dst.Empty() && dst.Side != pc.Side {
				*moves = append(*moves, Move{To: Coord{x, y, z1}, Capture: true})
			}
		}
	}
}
