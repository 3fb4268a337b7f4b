package main

import (
	"go.uber.org/zap"

	"github.com/joseyose/udimgen"
)

// report logs recoverable issues. They never stop generation.
func (a *app) report(issues []udimgen.Issue) {
	for _, it := range issues {
		fields := []zap.Field{zap.String("code", it.Code)}
		if it.Path != "" {
			fields = append(fields, zap.String("texture", it.Path))
		}
		if it.Line > 0 {
			fields = append(fields, zap.Int("line", it.Line))
		}

		switch it.Level {
		case udimgen.IssueError:
			a.logger.Error(it.Message, fields...)
		case udimgen.IssueInfo:
			a.logger.Info(it.Message, fields...)
		default:
			a.logger.Warn(it.Message, fields...)
		}
	}
}

func countErrors(issues []udimgen.Issue) int {
	n := 0
	for _, it := range issues {
		if it.Level == udimgen.IssueError {
			n++
		}
	}

	return n
}
