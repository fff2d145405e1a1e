package memcache_fx

import (
	"go.uber.org/fx"
	mem "tripgen/pkg/memcache"
)

var Module = fx.Provide(provideMemcacheClient)

func provideMemcacheClient() mem.TTLStore {
	return mem.NewStore()
}
