package app

import (
	"apt-sources/internal/adapters"
	"apt-sources/internal/ports"
)

type Service struct {
	SourcesDir ports.SourcesDirPort
	SourceFile ports.SourceFilePort
	Exporter   func(format string) (ports.RecordExportPort, error)
}

func NewService() Service {
	return Service{
		SourcesDir: adapters.NewSourcesDirAdapter(),
		SourceFile: adapters.NewSourcesFileAdapter(adapters.DefaultLockPath(adapters.DefaultSourcesDir), true),
		Exporter:   adapters.NewRecordExportAdapter,
	}
}
