package disp

type Logger interface {
	Info(message string, module string)
	Error(string)
}

type nopLogger struct{}

func (nopLogger) Info(string, string) {}
func (nopLogger) Error(string)        {}

var logger Logger = nopLogger{}

func SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	logger = l
}
