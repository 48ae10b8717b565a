package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// GO_ENV=productionならJSON、それ以外はテキスト
func Init(env string) {
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	if env == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func L() *logrus.Logger {
	return log
}

func WithField(key string, value interface{}) *logrus.Entry {
	return log.WithField(key, value)
}

func WithError(err error) *logrus.Entry {
	return log.WithError(err)
}
