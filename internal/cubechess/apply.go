package cubechess

import "fmt"

// ApplyMove 走一步，返回新棋盘和附带效果；原棋盘不变。
// mv 必须是 GenerateMoves(pc, b) 里的一步（按落点匹配），否则返回 ErrIllegalMove。
// 兵走到底线时不改棋盘，只返回 Effects.Promotion，需要再调用 CompletePromotion。
func ApplyMove(b *Board, pc Piece, mv Move) (*Board, Effects, error) {
	pc, err := boardPiece(b, pc)
	if err != nil {
		return nil, noEffects(), err
	}
	if !mv.To.InBounds() {
		return nil, noEffects(), fmt.Errorf("%w: (%d,%d,%d)", ErrOutOfBounds, mv.To.X, mv.To.Y, mv.To.Z)
	}
	found, ok := FindMove(pc, b, mv.To)
	if !ok {
		return nil, noEffects(), fmt.Errorf("%w: %s %s to (%d,%d,%d)",
			ErrIllegalMove, pc.Side, pc.Role, mv.To.X, mv.To.Y, mv.To.Z)
	}

	if pc.Role == Pawn && found.To.Z == promotionRank(pc.Side) {
		eff := noEffects()
		eff.Promotion = &PendingPromotion{Piece: pc, To: found.To}
		return b, eff, nil
	}

	nb := *b
	nb.EnsureHash()
	eff := nb.capture(pc.Side, found.To)

	nb.setCell(indexOf(pc.X, pc.Y, pc.Z), Cell{})

	if found.Castle != NoCastle && pc.Role == King {
		g := castleGeometry(pc, found.Castle)
		from := indexOf(g.rookFrom.X, g.rookFrom.Y, g.rookFrom.Z)
		rook := nb.Cells[from]
		if rook.Role == Rook && rook.Side == pc.Side {
			rook.Moved = true
			nb.setCell(from, Cell{})
			nb.setCell(indexOf(g.rookTo.X, g.rookTo.Y, g.rookTo.Z), rook)
		}
	}

	moved := pc.cell()
	moved.Moved = true
	nb.setCell(indexOf(found.To.X, found.To.Y, found.To.Z), moved)

	return &nb, eff, nil
}

// CompletePromotion 把兵从原位拿掉，处理落点吃子，在落点放上 role。
// role 只能是车马象后，否则 ErrInvalidPromotionRole。
func CompletePromotion(b *Board, pc Piece, to Coord, role Role) (*Board, Effects, error) {
	if !role.CanPromoteTo() {
		return nil, noEffects(), fmt.Errorf("%w: %s", ErrInvalidPromotionRole, role)
	}
	pc, err := boardPiece(b, pc)
	if err != nil {
		return nil, noEffects(), err
	}
	if !to.InBounds() {
		return nil, noEffects(), fmt.Errorf("%w: (%d,%d,%d)", ErrOutOfBounds, to.X, to.Y, to.Z)
	}
	if pc.Role != Pawn || to.Z != promotionRank(pc.Side) {
		return nil, noEffects(), fmt.Errorf("%w: %s %s cannot promote at (%d,%d,%d)",
			ErrIllegalMove, pc.Side, pc.Role, to.X, to.Y, to.Z)
	}
	if _, ok := FindMove(pc, b, to); !ok {
		return nil, noEffects(), fmt.Errorf("%w: %s pawn to (%d,%d,%d)",
			ErrIllegalMove, pc.Side, to.X, to.Y, to.Z)
	}

	nb := *b
	nb.EnsureHash()
	nb.setCell(indexOf(pc.X, pc.Y, pc.Z), Cell{})
	eff := nb.capture(pc.Side, to)
	nb.setCell(indexOf(to.X, to.Y, to.Z), Cell{Role: role, Side: pc.Side, Moved: true})

	return &nb, eff, nil
}

// 落点有子就吃掉；吃到王则 mover 获胜
func (b *Board) capture(mover Side, to Coord) Effects {
	eff := noEffects()
	sq := indexOf(to.X, to.Y, to.Z)
	victim, ok := b.pieceAt(sq)
	if !ok {
		return eff
	}
	b.setCell(sq, Cell{})
	eff.Captured = &victim
	if victim.Role == King {
		eff.Winner = mover
	}
	return eff
}

// pc 必须和棋盘上对应格子一致；返回棋盘上的那颗（moved 以棋盘为准）
func boardPiece(b *Board, pc Piece) (Piece, error) {
	if !onBoard(pc.X, pc.Y, pc.Z) {
		return pc, fmt.Errorf("%w: (%d,%d,%d)", ErrOutOfBounds, pc.X, pc.Y, pc.Z)
	}
	got, ok := b.pieceAt(indexOf(pc.X, pc.Y, pc.Z))
	if !ok || got.Role != pc.Role || got.Side != pc.Side {
		return pc, fmt.Errorf("%w: no %s %s at (%d,%d,%d)", ErrIllegalMove, pc.Side, pc.Role, pc.X, pc.Y, pc.Z)
	}
	return got, nil
}
