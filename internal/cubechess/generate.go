package cubechess

// GenerateMoves 生成 pc 在棋盘 b 上的所有走法，顺序固定（按方向枚举顺序）。
// 不做“送王”过滤：吃掉对方的王即获胜。
func GenerateMoves(pc Piece, b *Board) []Move {
	if !onBoard(pc.X, pc.Y, pc.Z) {
		return nil
	}
	var moves []Move
	switch pc.Role {
	case Pawn:
		genPawnMoves(b, pc, &moves)
	case Rook:
		genRookMoves(b, pc, &moves)
	case Knight:
		genKnightMoves(b, pc, &moves)
	case Bishop:
		genBishopMoves(b, pc, &moves)
	case Queen:
		genQueenMoves(b, pc, &moves)
	case King:
		genKingMoves(b, pc, &moves)
	}
	return moves
}

// PieceMoves 一颗棋子及其全部走法
type PieceMoves struct {
	Piece Piece  `json:"piece"`
	Moves []Move `json:"moves"`
}

// GenerateMovesForSide 列出 side 一方每颗能动的棋子及走法
func GenerateMovesForSide(b *Board, side Side) []PieceMoves {
	var out []PieceMoves
	for _, pc := range b.Pieces(side) {
		moves := GenerateMoves(pc, b)
		if len(moves) == 0 {
			continue
		}
		out = append(out, PieceMoves{Piece: pc, Moves: moves})
	}
	return out
}

// FindMove 在 pc 的走法中找落点为 to 的那一步
func FindMove(pc Piece, b *Board, to Coord) (Move, bool) {
	for _, mv := range GenerateMoves(pc, b) {
		if mv.To == to {
			return mv, true
		}
	}
	return Move{}, false
}
