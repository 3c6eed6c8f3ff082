package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/models"
	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/protocol"
)

type clientConfig struct {
	addr string
	name string
}

func main() {
	cfg := &clientConfig{}

	cmd := &cobra.Command{
		Use:   "quiz-client",
		Short: "A terminal client for the multiplayer trivia server.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return play(cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.addr, "addr", "a", "localhost:9090", "server address")
	cmd.Flags().StringVarP(&cfg.name, "name", "n", "", "display name; prompted for when empty")

	cmd.SilenceUsage = true
	cobra.CheckErr(cmd.Execute())
}

func play(cfg *clientConfig) error {
	stdin := bufio.NewScanner(os.Stdin)

	name := strings.TrimSpace(cfg.name)
	for name == "" {
		fmt.Print("Enter your name: ")
		if !stdin.Scan() {
			return nil
		}
		name = strings.TrimSpace(stdin.Text())
	}

	conn, err := net.Dial("tcp", cfg.addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.addr, err)
	}
	defer conn.Close()

	if _, err := fmt.Fprintf(conn, "%s\n", name); err != nil {
		return err
	}

	fmt.Printf("Connected to %s as %s.\n", cfg.addr, name)
	fmt.Println("Type an option number to answer, anything else to chat.")

	done := make(chan struct{})
	go func() {
		defer close(done)
		readEvents(conn)
	}()

	// Input loop runs until the server closes the connection or stdin ends
	go func() {
		for stdin.Scan() {
			line := strings.TrimSpace(stdin.Text())
			if line == "" {
				continue
			}

			var msg protocol.ClientMessage
			if choice, err := strconv.Atoi(line); err == nil && choice >= 0 && choice < models.OptionCount {
				msg = protocol.ClientMessage{
					Type:   protocol.TypeAnswer,
					Name:   name,
					Answer: choice,
				}
			} else {
				msg = protocol.ClientMessage{
					Type: protocol.TypeChat,
					Name: name,
					Msg:  line,
				}
			}

			payload, err := protocol.Marshal(msg)
			if err != nil {
				continue
			}
			if _, err := conn.Write(payload); err != nil {
				return
			}
		}
	}()

	<-done
	fmt.Println("Disconnected.")
	return nil
}

// readEvents renders the server event stream until the connection closes
func readEvents(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		msg, err := protocol.ParseServerMessage(line)
		if err != nil {
			continue
		}
		render(msg)
	}
}

func render(msg *protocol.ServerMessage) {
	switch msg.Type {
	case protocol.TypeQuestion:
		fmt.Printf("\nQuestion %d/%d (%ds): %s\n",
			msg.QuestionNum, msg.TotalQuestions, msg.TimeLimit, msg.Question)
		for i, opt := range msg.Options {
			fmt.Printf("  %d) %s\n", i, opt)
		}
	case protocol.TypeResult:
		if msg.Timeout {
			fmt.Println("Time's up! Everyone loses a point.")
			return
		}
		verdict := "wrong"
		if msg.Correct != nil && *msg.Correct {
			verdict = "correct"
		}
		fmt.Printf("%s answered first and was %s.\n", msg.Player, verdict)
	case protocol.TypeScore:
		parts := make([]string, 0, len(msg.Scores))
		for player, score := range msg.Scores {
			parts = append(parts, fmt.Sprintf("%s: %d", player, score))
		}
		fmt.Printf("Scores: %s\n", strings.Join(parts, ", "))
	case protocol.TypeEnd:
		fmt.Printf("\nGame over! Winner: %s\n", msg.Winner)
	case protocol.TypeChat:
		fmt.Printf("[%s] %s\n", msg.Name, msg.Msg)
	}
}
