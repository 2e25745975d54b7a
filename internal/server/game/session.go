package game

import (
	"errors"
	"fmt"

	"cubechess/internal/cubechess"
)

var (
	ErrGameOver           = errors.New("game is over")
	ErrPromotionPending   = errors.New("promotion pending")
	ErrNoPromotionPending = errors.New("no promotion pending")
)

type Status int8

const (
	StatusActive Status = iota
	StatusTerminal
)

func (s Status) String() string {
	if s == StatusTerminal {
		return "terminal"
	}
	return "active"
}

// Session 一局棋的全部会话状态。规则引擎本身无状态，
// 所有操作都接收一个 Session 值、返回新的 Session 值。
type Session struct {
	Board      *cubechess.Board
	Turn       cubechess.Side
	Selected   *cubechess.Piece
	ValidMoves []cubechess.Move
	// Captured[s] 是 s 一方吃掉的子
	Captured [2][]cubechess.Piece
	Status   Status
	Winner   cubechess.Side
	Pending  *cubechess.PendingPromotion
	Plies    int
}

func NewSession() Session {
	return Session{
		Board:  cubechess.NewInitialBoard(),
		Turn:   cubechess.White,
		Status: StatusActive,
		Winner: cubechess.NoSide,
	}
}

// StatusText 例如 "ACTIVE"、"WHITE WINS"
func (s Session) StatusText() string {
	if s.Status == StatusTerminal {
		return s.Winner.String() + " WINS"
	}
	return "ACTIVE"
}

func (s Session) checkPlayable() error {
	if s.Status == StatusTerminal {
		return fmt.Errorf("%w: %s", ErrGameOver, s.StatusText())
	}
	if s.Pending != nil {
		return ErrPromotionPending
	}
	return nil
}

// Select 选中 at 上的本方棋子并算出可走的格子。
// 空格或对方棋子：不报错，只清掉当前选择。
func (s Session) Select(at cubechess.Coord) (Session, error) {
	if err := s.checkPlayable(); err != nil {
		return s, err
	}
	pc, err := s.Board.OccupantAt(at.X, at.Y, at.Z)
	if err != nil {
		return s, err
	}
	if pc == nil || pc.Side != s.Turn {
		return s.clearSelection(), nil
	}
	s.Selected = pc
	s.ValidMoves = cubechess.GenerateMoves(*pc, s.Board)
	return s, nil
}

// Click 处理一次点击：有选中且 at 可达就走子，否则按 Select 处理。
func (s Session) Click(at cubechess.Coord) (Session, cubechess.Effects, error) {
	none := cubechess.Effects{Winner: cubechess.NoSide}
	if err := s.checkPlayable(); err != nil {
		return s, none, err
	}
	if !at.InBounds() {
		return s, none, fmt.Errorf("%w: (%d,%d,%d)", cubechess.ErrOutOfBounds, at.X, at.Y, at.Z)
	}
	if s.Selected != nil {
		for _, mv := range s.ValidMoves {
			if mv.To == at {
				return s.move(*s.Selected, mv)
			}
		}
	}
	next, err := s.Select(at)
	return next, none, err
}

func (s Session) move(pc cubechess.Piece, mv cubechess.Move) (Session, cubechess.Effects, error) {
	board, eff, err := cubechess.ApplyMove(s.Board, pc, mv)
	if err != nil {
		return s, eff, err
	}
	if eff.Promotion != nil {
		// 等待选择升变棋子，不换边
		s = s.clearSelection()
		s.Pending = eff.Promotion
		return s, eff, nil
	}
	return s.commit(board, eff), eff, nil
}

// Promote 完成挂起的升变。非法的 role 直接拒绝，升变仍然挂起。
func (s Session) Promote(role cubechess.Role) (Session, cubechess.Effects, error) {
	none := cubechess.Effects{Winner: cubechess.NoSide}
	if s.Status == StatusTerminal {
		return s, none, fmt.Errorf("%w: %s", ErrGameOver, s.StatusText())
	}
	if s.Pending == nil {
		return s, none, ErrNoPromotionPending
	}
	board, eff, err := cubechess.CompletePromotion(s.Board, s.Pending.Piece, s.Pending.To, role)
	if err != nil {
		return s, none, err
	}
	s.Pending = nil
	return s.commit(board, eff), eff, nil
}

func (s Session) commit(board *cubechess.Board, eff cubechess.Effects) Session {
	s.Board = board
	if eff.Captured != nil {
		idx := sideIndex(s.Turn)
		s.Captured[idx] = append(append([]cubechess.Piece(nil), s.Captured[idx]...), *eff.Captured)
	}
	if eff.Winner != cubechess.NoSide {
		s.Status = StatusTerminal
		s.Winner = eff.Winner
	}
	s.Turn = s.Turn.Opposite()
	s.Plies++
	return s.clearSelection()
}

func (s Session) clearSelection() Session {
	s.Selected = nil
	s.ValidMoves = nil
	return s
}

func sideIndex(side cubechess.Side) int {
	if side == cubechess.Black {
		return 1
	}
	return 0
}
