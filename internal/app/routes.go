package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/vancomm/gamepole/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.log, a.store, a.jwt, a.ws, a.cfg.Server.MaxSize, createRand(),
	)

	game.Routes(a.router)
}
