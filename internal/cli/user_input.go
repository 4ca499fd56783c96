package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// asker задает вопрос оператору через строку ввода консоли
type asker struct {
	readLine func() (string, error)
	out      io.Writer
}

func (a *asker) Ask(ctx context.Context, question string) (string, error) {
	fmt.Fprint(a.out, question)

	answerChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		answer, err := a.readLine()
		if err != nil {
			errChan <- err
			return
		}
		answerChan <- strings.TrimSpace(answer)
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-errChan:
		return "", err
	case answer := <-answerChan:
		return answer, nil
	}
}
