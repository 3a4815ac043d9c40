//go:generate mockgen -source=../task_repository.go   -destination=./mock_task_repository.go   -package=mocks
//go:generate mockgen -source=../task_cache.go        -destination=./mock_task_cache.go        -package=mocks
//go:generate mockgen -source=../validator.go         -destination=./mock_validator.go         -package=mocks
//go:generate mockgen -source=../logger.go            -destination=./mock_logger.go            -package=mocks
//go:generate mockgen -source=../message_consumer.go  -destination=./mock_message_consumer.go  -package=mocks
//go:generate mockgen -source=../failure_sink.go      -destination=./mock_failure_sink.go      -package=mocks
//go:generate mockgen -source=../health_probe.go      -destination=./mock_health_probe.go      -package=mocks
//go:generate mockgen -source=../task_read_service.go -destination=mock_task_read_service.go   -package=mocks

package mocks
