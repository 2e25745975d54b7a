package cubechess

import (
	"math/rand"
	"reflect"
	"testing"
)

func moveSet(moves []Move) map[Move]bool {
	out := make(map[Move]bool, len(moves))
	for _, mv := range moves {
		out[mv] = true
	}
	return out
}

func TestInitialPawnMoves(t *testing.T) {
	b := NewInitialBoard()
	pc, err := b.OccupantAt(0, 1, 1)
	if err != nil || pc == nil {
		t.Fatalf("no pawn at (0,1,1): %v", err)
	}
	got := GenerateMoves(*pc, b)
	want := []Move{
		{To: Coord{0, 1, 2}},
		{To: Coord{0, 1, 3}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestRookStopsAtCapture(t *testing.T) {
	rook := Piece{Role: Rook, Side: White, X: 3, Y: 3, Z: 3}
	b := newBoard(rook, Piece{Role: Pawn, Side: Black, X: 3, Y: 3, Z: 6})

	got := moveSet(GenerateMoves(rook, b))
	for _, mv := range []Move{
		{To: Coord{3, 3, 4}},
		{To: Coord{3, 3, 5}},
		{To: Coord{3, 3, 6}, Capture: true},
	} {
		if !got[mv] {
			t.Fatalf("missing %+v", mv)
		}
	}
	for mv := range got {
		if mv.To == (Coord{3, 3, 7}) {
			t.Fatalf("rook jumped past capture: %+v", mv)
		}
	}
	if len(got) != 20 {
		t.Fatalf("rook move count: got %d want 20", len(got))
	}
}

func TestMoveCountsOnEmptyBoard(t *testing.T) {
	tests := []struct {
		name string
		pc   Piece
		want int
	}{
		{"KnightCenter", Piece{Role: Knight, Side: White, X: 3, Y: 3, Z: 3}, 24},
		{"KnightCorner", Piece{Role: Knight, Side: White}, 6},
		{"KingCenter", Piece{Role: King, Side: White, X: 3, Y: 3, Z: 3, Moved: true}, 26},
		{"KingCorner", Piece{Role: King, Side: Black}, 7},
		{"RookCorner", Piece{Role: Rook, Side: White}, 21},
		{"BishopCorner", Piece{Role: Bishop, Side: White}, 28},
		{"QueenCorner", Piece{Role: Queen, Side: Black}, 49},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard(tt.pc)
			moves := GenerateMoves(tt.pc, b)
			if len(moves) != tt.want {
				t.Fatalf("got %d moves want %d", len(moves), tt.want)
			}
			for _, mv := range moves {
				if mv.Capture {
					t.Fatalf("capture on empty board: %+v", mv)
				}
			}
		})
	}
}

func TestDirectionSets(t *testing.T) {
	if len(rookDirs) != 6 || len(bishopDirs) != 20 || len(allDirs) != 26 {
		t.Fatalf("dirs: rook=%d bishop=%d all=%d", len(rookDirs), len(bishopDirs), len(allDirs))
	}
	seen := map[direction]bool{}
	for _, d := range knightOffsets {
		if seen[d] {
			t.Fatalf("duplicate knight offset %+v", d)
		}
		seen[d] = true
		mags := map[int]int{}
		for _, v := range [3]int{d.Dx, d.Dy, d.Dz} {
			if v < 0 {
				v = -v
			}
			mags[v]++
		}
		if mags[0] != 1 || mags[1] != 1 || mags[2] != 1 {
			t.Fatalf("bad knight offset %+v", d)
		}
	}
	if len(seen) != 24 {
		t.Fatalf("knight offsets: got %d want 24", len(seen))
	}
}

func TestKnightCapturesButSkipsOwn(t *testing.T) {
	n := Piece{Role: Knight, Side: White, X: 3, Y: 3, Z: 3}
	b := newBoard(n,
		Piece{Role: Pawn, Side: Black, X: 5, Y: 4, Z: 3},
		Piece{Role: Pawn, Side: White, X: 1, Y: 2, Z: 3},
		// 中间格被挡不影响马
		Piece{Role: Rook, Side: White, X: 4, Y: 3, Z: 3},
	)
	got := moveSet(GenerateMoves(n, b))
	if !got[Move{To: Coord{5, 4, 3}, Capture: true}] {
		t.Fatalf("missing knight capture")
	}
	for mv := range got {
		if mv.To == (Coord{1, 2, 3}) {
			t.Fatalf("knight landed on own piece")
		}
	}
	if len(got) != 23 {
		t.Fatalf("got %d moves want 23", len(got))
	}
}

func TestPawnDoubleStep(t *testing.T) {
	pawn := Piece{Role: Pawn, Side: White, X: 2, Y: 2, Z: 1}

	t.Run("Clear", func(t *testing.T) {
		got := moveSet(GenerateMoves(pawn, newBoard(pawn)))
		if !got[Move{To: Coord{2, 2, 2}}] || !got[Move{To: Coord{2, 2, 3}}] || len(got) != 2 {
			t.Fatalf("got %+v", got)
		}
	})
	t.Run("FarBlocked", func(t *testing.T) {
		b := newBoard(pawn, Piece{Role: Knight, Side: Black, X: 2, Y: 2, Z: 3})
		got := moveSet(GenerateMoves(pawn, b))
		if !got[Move{To: Coord{2, 2, 2}}] || len(got) != 1 {
			t.Fatalf("got %+v", got)
		}
	})
	t.Run("NearBlocked", func(t *testing.T) {
		b := newBoard(pawn, Piece{Role: Knight, Side: Black, X: 2, Y: 2, Z: 2})
		if got := GenerateMoves(pawn, b); len(got) != 0 {
			t.Fatalf("blocked pawn moved: %+v", got)
		}
	})
	t.Run("NotOnStartRank", func(t *testing.T) {
		p := pawn
		p.Z = 2
		got := GenerateMoves(p, newBoard(p))
		if len(got) != 1 || got[0].To != (Coord{2, 2, 3}) {
			t.Fatalf("got %+v", got)
		}
	})
	t.Run("BlackMovesDown", func(t *testing.T) {
		p := Piece{Role: Pawn, Side: Black, X: 0, Y: 0, Z: 6}
		got := moveSet(GenerateMoves(p, newBoard(p)))
		if !got[Move{To: Coord{0, 0, 5}}] || !got[Move{To: Coord{0, 0, 4}}] || len(got) != 2 {
			t.Fatalf("got %+v", got)
		}
	})
}

func TestPawnDiagonalCaptures(t *testing.T) {
	pawn := Piece{Role: Pawn, Side: White, X: 3, Y: 3, Z: 2}
	pieces := []Piece{pawn}
	// 八个斜格全放黑子，再在正前方放一个（正前方不能吃）
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			pieces = append(pieces, Piece{Role: Bishop, Side: Black, X: 3 + dx, Y: 3 + dy, Z: 3})
		}
	}
	pieces = append(pieces, Piece{Role: Bishop, Side: Black, X: 3, Y: 3, Z: 3})
	b := newBoard(pieces...)

	moves := GenerateMoves(pawn, b)
	if len(moves) != 8 {
		t.Fatalf("got %d captures want 8: %+v", len(moves), moves)
	}
	for _, mv := range moves {
		if !mv.Capture || mv.To.Z != 3 || mv.To == (Coord{3, 3, 3}) {
			t.Fatalf("bad pawn move %+v", mv)
		}
	}

	// 己方子不能吃，空格不能斜走
	own := newBoard(pawn, Piece{Role: Bishop, Side: White, X: 4, Y: 4, Z: 3})
	for _, mv := range GenerateMoves(pawn, own) {
		if mv.To != (Coord{3, 3, 3}) {
			t.Fatalf("unexpected pawn move %+v", mv)
		}
	}
}

func TestPawnEdgeOfBoard(t *testing.T) {
	// 在 x=0,y=0 的角上，只有 3 个斜格在界内
	pawn := Piece{Role: Pawn, Side: Black, X: 0, Y: 0, Z: 4}
	b := newBoard(pawn,
		Piece{Role: Rook, Side: White, X: 1, Y: 0, Z: 3},
		Piece{Role: Rook, Side: White, X: 0, Y: 1, Z: 3},
		Piece{Role: Rook, Side: White, X: 1, Y: 1, Z: 3},
	)
	got := moveSet(GenerateMoves(pawn, b))
	if len(got) != 4 || !got[Move{To: Coord{0, 0, 3}}] {
		t.Fatalf("got %+v", got)
	}
}

func TestCastleMoves(t *testing.T) {
	king := Piece{Role: King, Side: White, X: 4, Y: 0, Z: 0}
	kRook := Piece{Role: Rook, Side: White, X: 7, Y: 0, Z: 0}
	qRook := Piece{Role: Rook, Side: White, X: 0, Y: 0, Z: 0}

	got := moveSet(GenerateMoves(king, newBoard(king, kRook, qRook)))
	if !got[Move{To: Coord{6, 0, 0}, Castle: KingSide}] {
		t.Fatalf("missing king-side castle: %+v", got)
	}
	if !got[Move{To: Coord{2, 0, 0}, Castle: QueenSide}] {
		t.Fatalf("missing queen-side castle: %+v", got)
	}

	movedKing := king
	movedKing.Moved = true
	for mv := range moveSet(GenerateMoves(movedKing, newBoard(movedKing, kRook, qRook))) {
		if mv.Castle != NoCastle {
			t.Fatalf("moved king castled: %+v", mv)
		}
	}

	movedRook := kRook
	movedRook.Moved = true
	for mv := range moveSet(GenerateMoves(king, newBoard(king, movedRook))) {
		if mv.Castle != NoCastle {
			t.Fatalf("castled with moved rook: %+v", mv)
		}
	}

	// 开局时王两边都被挡住
	b := NewInitialBoard()
	pc, _ := b.OccupantAt(4, 0, 0)
	for _, mv := range GenerateMoves(*pc, b) {
		if mv.Castle != NoCastle {
			t.Fatalf("castle available at start: %+v", mv)
		}
	}
}

func TestCastleLandingSquares(t *testing.T) {
	king := Piece{Role: King, Side: White, X: 4, Y: 0, Z: 0}
	qRook := Piece{Role: Rook, Side: White, X: 0, Y: 0, Z: 0}
	queenSide := Move{To: Coord{2, 0, 0}, Castle: QueenSide}

	tests := []struct {
		name    string
		blocker Piece
		want    bool
	}{
		{"KnightBesideRook", Piece{Role: Knight, Side: White, X: 1, Y: 0, Z: 0}, true},
		{"KingLandingOccupied", Piece{Role: Knight, Side: Black, X: 2, Y: 0, Z: 0}, false},
		{"RookLandingOccupied", Piece{Role: Bishop, Side: White, X: 3, Y: 0, Z: 0}, false},
		{"OtherRow", Piece{Role: Queen, Side: Black, X: 2, Y: 1, Z: 0}, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := moveSet(GenerateMoves(king, newBoard(king, qRook, tt.blocker)))
			if got[queenSide] != tt.want {
				t.Fatalf("queen-side castle: got %v want %v (%+v)", got[queenSide], tt.want, got)
			}
		})
	}
}

func TestGenerateMovesDeterministic(t *testing.T) {
	b := NewInitialBoard()
	for _, pc := range b.Pieces(NoSide) {
		a := GenerateMoves(pc, b)
		c := GenerateMoves(pc, b)
		if !reflect.DeepEqual(a, c) {
			t.Fatalf("non-deterministic moves for %+v", pc)
		}
	}
}

func TestInitialMovesForSide(t *testing.T) {
	b := NewInitialBoard()
	total := 0
	for _, pm := range GenerateMovesForSide(b, White) {
		if pm.Piece.Side != White {
			t.Fatalf("black piece listed for white: %+v", pm.Piece)
		}
		total += len(pm.Moves)
	}
	// 64 个兵各两步，其余大子都被兵和自己人挡住，只有马能跳
	if total < 128 {
		t.Fatalf("white move total too small: %d", total)
	}
}

// 随机对局中检查：落点都在界内，滑动子从不越子
func TestRandomPlayInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 4; game++ {
		b := NewInitialBoard()
		side := White
		for ply := 0; ply < 120; ply++ {
			all := GenerateMovesForSide(b, side)
			for _, pm := range all {
				for _, mv := range pm.Moves {
					checkMoveInvariants(t, b, pm.Piece, mv)
				}
			}
			if len(all) == 0 {
				break
			}
			pm := all[rng.Intn(len(all))]
			mv := pm.Moves[rng.Intn(len(pm.Moves))]
			next, eff, err := ApplyMove(b, pm.Piece, mv)
			if err != nil {
				t.Fatalf("apply %+v %+v: %v", pm.Piece, mv, err)
			}
			if eff.Promotion != nil {
				next, eff, err = CompletePromotion(b, pm.Piece, mv.To, Queen)
				if err != nil {
					t.Fatalf("promote: %v", err)
				}
			}
			b = next
			if eff.Winner != NoSide {
				break
			}
			side = side.Opposite()
		}
	}
}

func checkMoveInvariants(t *testing.T, b *Board, pc Piece, mv Move) {
	t.Helper()
	if !mv.To.InBounds() {
		t.Fatalf("out of bounds move %+v for %+v", mv, pc)
	}
	dst := b.Cells[indexOf(mv.To.X, mv.To.Y, mv.To.Z)]
	if mv.Capture != (!dst.Empty()) {
		t.Fatalf("capture flag mismatch %+v for %+v", mv, pc)
	}
	if !dst.Empty() && dst.Side == pc.Side {
		t.Fatalf("move onto own piece %+v for %+v", mv, pc)
	}
	switch pc.Role {
	case Rook, Bishop, Queen, King:
		if mv.Castle != NoCastle {
			return
		}
		dx, dy, dz := sign(mv.To.X-pc.X), sign(mv.To.Y-pc.Y), sign(mv.To.Z-pc.Z)
		x, y, z := pc.X+dx, pc.Y+dy, pc.Z+dz
		for (Coord{x, y, z}) != mv.To {
			if !b.Cells[indexOf(x, y, z)].Empty() {
				t.Fatalf("%s jumped over (%d,%d,%d) to %+v", pc.Role, x, y, z, mv.To)
			}
			x, y, z = x+dx, y+dy, z+dz
		}
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
