package cubechess

type direction struct{ Dx, Dy, Dz int }

// 3×3×3 邻域去掉零向量共 26 个方向：
// 只有一个轴非零的 6 个是直线方向，其余 20 个（面对角 + 体对角）都算斜线。
var rookDirs, bishopDirs, allDirs = buildDirections()

func buildDirections() (rook, bishop, all []direction) {
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nonZero := 0
				for _, v := range [3]int{dx, dy, dz} {
					if v != 0 {
						nonZero++
					}
				}
				switch {
				case nonZero == 0:
					continue
				case nonZero == 1:
					rook = append(rook, direction{dx, dy, dz})
				default:
					bishop = append(bishop, direction{dx, dy, dz})
				}
			}
		}
	}
	all = append(append(all, rook...), bishop...)
	return rook, bishop, all
}

// 沿射线逐格走：空格继续，遇敌子吃后停，遇己方子直接停。
// maxSteps <= 0 表示不限步数。
func genRayMoves(b *Board, pc Piece, dirs []direction, maxSteps int, moves *[]Move) {
	for _, d := range dirs {
		x, y, z := pc.X+d.Dx, pc.Y+d.Dy, pc.Z+d.Dz
		for step := 1; onBoard(x, y, z); step++ {
			dst := b.Cells[indexOf(x, y, z)]
			if dst.Empty() {
				*moves = append(*moves, Move{To: Coord{x, y, z}})
			} else {
				if dst.Side != pc.Side {
					*moves = append(*moves, Move{To: Coord{x, y, z}, Capture: true})
				}
				break
			}
			if maxSteps > 0 && step >= maxSteps {
				break
			}
			x += d.Dx
			y += d.Dy
			z += d.Dz
		}
	}
}

func genRookMoves(b *Board, pc Piece, moves *[]Move) {
	genRayMoves(b, pc, rookDirs, 0, moves)
}

func genBishopMoves(b *Board, pc Piece, moves *[]Move) {
	genRayMoves(b, pc, bishopDirs, 0, moves)
}

func genQueenMoves(b *Board, pc Piece, moves *[]Move) {
	genRayMoves(b, pc, allDirs, 0, moves)
}

// 王：26 个方向各一步，再加易位
func genKingMoves(b *Board, pc Piece, moves *[]Move) {
	genRayMoves(b, pc, allDirs, 1, moves)
	genCastleMoves(b, pc, moves)
}

// genCastleMoves 生成易位：王沿 x 走两格，车跳到王经过的那一格。
// 比"边上有车就能易位"更严：王和车都必须没动过（Moved 标记），
// 王的落点和车的落点必须是空的，否则会两子同格。
// 其余中间格和被攻击格不检查，例如后翼 x=1 上有子照样可以易位。
func genCastleMoves(b *Board, pc Piece, moves *[]Move) {
	if pc.Moved {
		return
	}
	for _, cs := range [2]CastleSide{KingSide, QueenSide} {
		g := castleGeometry(pc, cs)
		if !onBoard(g.kingTo.X, g.kingTo.Y, g.kingTo.Z) || !onBoard(g.rookTo.X, g.rookTo.Y, g.rookTo.Z) {
			continue
		}
		rook := b.Cells[indexOf(g.rookFrom.X, g.rookFrom.Y, g.rookFrom.Z)]
		if rook.Role != Rook || rook.Side != pc.Side || rook.Moved {
			continue
		}
		if !b.Cells[indexOf(g.kingTo.X, g.kingTo.Y, g.kingTo.Z)].Empty() {
			continue
		}
		if !b.Cells[indexOf(g.rookTo.X, g.rookTo.Y, g.rookTo.Z)].Empty() {
			continue
		}
		*moves = append(*moves, Move{To: g.kingTo, Castle: cs})
	}
}

type castle struct {
	kingTo   Coord
	rookFrom Coord
	rookTo   Coord
}

// 王横向（x 轴）走两格；王翼车在 x=Size-1，落在王左边一格；后翼车在 x=0，落在王右边一格。
func castleGeometry(king Piece, cs CastleSide) castle {
	switch cs {
	case KingSide:
		to := Coord{king.X + 2, king.Y, king.Z}
		return castle{
			kingTo:   to,
			rookFrom: Coord{Size - 1, king.Y, king.Z},
			rookTo:   Coord{to.X - 1, to.Y, to.Z},
		}
	case QueenSide:
		to := Coord{king.X - 2, king.Y, king.Z}
		return castle{
			kingTo:   to,
			rookFrom: Coord{0, king.Y, king.Z},
			rookTo:   Coord{to.X + 1, to.Y, to.Z},
		}
	}
	return castle{}
}
