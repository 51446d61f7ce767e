package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"rehearse/internal/ipc"
	"rehearse/internal/questions"
)

func newQuestionCommand(ctx *commandContext) *cobra.Command {
	questionCmd := &cobra.Command{
		Use:   "question",
		Short: "Interview question utilities",
	}

	questionCmd.AddCommand(newQuestionNewCommand(ctx))
	questionCmd.AddCommand(newQuestionListCommand())
	questionCmd.AddCommand(newQuestionShowCommand())

	return questionCmd
}

func newQuestionNewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Draw a fresh question from the active topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.NewQuestion()
				if err != nil {
					return err
				}
				printQuestion(cmd.OutOrStdout(), resp.Question)
				return nil
			})
		},
	}
}

func newQuestionListCommand() *cobra.Command {
	var topicFlag string
	var difficultyFlag string
	var categoryFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "list",
		Short:       "List questions in a topic bank",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.TrimSpace(topicFlag)
			if topic == "" {
				topic = "hr"
			}

			var (
				bank []questions.Question
				err  error
			)
			switch {
			case strings.TrimSpace(difficultyFlag) != "":
				bank, err = questions.ByDifficulty(topic, difficultyFlag)
			case strings.TrimSpace(categoryFlag) != "":
				bank, err = questions.ByCategory(topic, categoryFlag)
			default:
				bank, err = questions.Bank(topic)
			}
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, bank)
			}

			rows := make([][]string, 0, len(bank))
			for _, q := range bank {
				rows = append(rows, []string{q.ID, q.Category, q.Difficulty, formatSeconds(q.ExpectedTime), q.Text})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Category", "Difficulty", "Expected", "Question"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&topicFlag, "topic", "t", "", "Topic bank to list (hr, technical, behavioral)")
	cmd.Flags().StringVar(&difficultyFlag, "difficulty", "", "Filter by difficulty (easy, medium, hard)")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "Filter by category")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit questions as JSON")
	return cmd
}

func newQuestionShowCommand() *cobra.Command {
	var topicFlag string

	cmd := &cobra.Command{
		Use:         "show <id>",
		Short:       "Show a question with its preparation tips",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.TrimSpace(topicFlag)
			if topic == "" {
				topic = topicFromID(args[0])
			}
			question, err := questions.ByID(topic, args[0])
			if err != nil {
				return err
			}
			printQuestion(cmd.OutOrStdout(), question)
			return nil
		},
	}

	cmd.Flags().StringVarP(&topicFlag, "topic", "t", "", "Topic bank containing the question")
	return cmd
}

func newTopicCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "topic [name]",
		Short: "Show or switch the active interview topic",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				stdout := cmd.OutOrStdout()
				if len(args) == 0 {
					resp, err := client.TopicList()
					if err != nil {
						return err
					}
					for _, topic := range resp.Topics {
						marker := " "
						if topic == resp.Active {
							marker = "*"
						}
						fmt.Fprintf(stdout, "%s %s\n", marker, topic)
					}
					return nil
				}

				resp, err := client.SetTopic(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(stdout, "Topic set to %s\n", resp.Label)
				return nil
			})
		},
	}
}

func printQuestion(stdout io.Writer, question questions.Question) {
	fmt.Fprintf(stdout, "[%s] %s\n", question.ID, question.Text)
	fmt.Fprintf(stdout, "Category: %s  Difficulty: %s  Expected answer: %s\n",
		question.Category, question.Difficulty, formatSeconds(question.ExpectedTime))
	if len(question.Tips) > 0 {
		fmt.Fprintln(stdout, "Tips:")
		for _, tip := range question.Tips {
			fmt.Fprintf(stdout, "  - %s\n", tip)
		}
	}
}

// topicFromID maps a question id prefix to its bank.
func topicFromID(id string) string {
	switch {
	case strings.HasPrefix(id, "tech_"):
		return "technical"
	case strings.HasPrefix(id, "beh_"):
		return "behavioral"
	default:
		return "hr"
	}
}
