package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"cubechess/internal/cubechess"
)

// 随机对局里每一步的局面和某颗子的全部走法，给前端或其它实现做对照
type TestCase struct {
	Board string           `json:"board"`
	Piece cubechess.Piece  `json:"piece"`
	Moves []cubechess.Move `json:"moves"`
}

func main() {
	numGames := flag.Int("games", 10, "number of random games")
	maxPlies := flag.Int("plies", 300, "max plies per game")
	seed := flag.Int64("seed", 1, "random seed")
	out := flag.String("out", "move_gen_test_data.json", "output file")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	var testCases []TestCase

	for g := 0; g < *numGames; g++ {
		b := cubechess.NewInitialBoard()
		side := cubechess.White
		for ply := 0; ply < *maxPlies; ply++ {
			movable := cubechess.GenerateMovesForSide(b, side)
			if len(movable) == 0 {
				break
			}
			pm := movable[rng.Intn(len(movable))]
			testCases = append(testCases, TestCase{Board: b.Encode(), Piece: pm.Piece, Moves: pm.Moves})

			mv := pm.Moves[rng.Intn(len(pm.Moves))]
			next, eff, err := cubechess.ApplyMove(b, pm.Piece, mv)
			if err != nil {
				log.Fatalf("game %d ply %d: %v", g, ply, err)
			}
			if eff.Promotion != nil {
				roles := []cubechess.Role{cubechess.Rook, cubechess.Knight, cubechess.Bishop, cubechess.Queen}
				next, eff, err = cubechess.CompletePromotion(b, pm.Piece, mv.To, roles[rng.Intn(len(roles))])
				if err != nil {
					log.Fatalf("game %d ply %d promotion: %v", g, ply, err)
				}
			}
			b = next
			if eff.Winner != cubechess.NoSide {
				break
			}
			side = side.Opposite()
		}
	}

	data, err := json.MarshalIndent(testCases, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Generated %d test cases from %d random games to %s\n", len(testCases), *numGames, *out)
}
