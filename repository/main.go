package repository

import (
	"github.com/tranvu/cinesync/config"
	"github.com/tranvu/cinesync/infra"
)

type Repository struct {
	RoomStateRepo *RoomStateRepository
	KVRepo        *KVRepository
	ObjectRepo    *ObjectRepository
}

var repository *Repository

func InitRepository(cfg *config.Config, inf *infra.Infra) *Repository {
	repository = &Repository{
		RoomStateRepo: NewRoomStateRepository(inf.Redis),
		KVRepo:        NewKVRepository(inf.Redis),
		ObjectRepo:    NewObjectRepository(inf.Minio, cfg.EnvConfig.Minio.QuotaBytes, inf.Logger),
	}
	return repository
}
