package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/rally/internal/rally/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := rally(); err != nil {
		logrus.Fatal(err)
	}
}

func rally() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.ExecuteContext(context.Background())
}
