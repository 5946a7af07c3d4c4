package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name PredictionRepository --dir ../domain/player --output domain/player --outpkg playermock --filename prediction_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ScheduleRepository --dir ../domain/fixture --output domain/fixture --outpkg fixturemock --filename schedule_repository_mock.go
