package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/kpi --output domain/kpi --outpkg kpimock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/scout --output domain/scout --outpkg scoutmock --filename repository_mock.go
