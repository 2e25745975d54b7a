package main

import (
	"fmt"

	"cubechess/internal/cubechess"
)

func main() {
	b := cubechess.NewInitialBoard()
	fmt.Println("Board:", b.Encode())
	for _, side := range []cubechess.Side{cubechess.White, cubechess.Black} {
		total := 0
		movable := cubechess.GenerateMovesForSide(b, side)
		for _, pm := range movable {
			total += len(pm.Moves)
		}
		fmt.Printf("%s: %d pieces can move, %d moves\n", side, len(movable), total)
	}
}
