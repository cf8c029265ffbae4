package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SriHarshaMande/Planning-poker/internal/client"
	"github.com/SriHarshaMande/Planning-poker/internal/model"
)

func main() {
	baseURL := flag.String("server", "http://localhost:8080", "base URL of the planning poker server")
	sessionPath := flag.String("session", defaultSessionPath(), "path to the persisted session file")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := client.NewAPI(*baseURL)
	syncer := client.NewSyncer(api, client.NewFileSessionStore(*sessionPath))

	if syncer.Restore(ctx) {
		fmt.Println("Restored previous session.")
		printState(syncer)
	}

	go syncer.Run(ctx)

	fmt.Println("Planning poker client. Type 'help' for commands.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help":
			printHelp()
		case "create":
			runCmd(len(args) >= 1, "create <name>", func() error {
				return syncer.Create(ctx, strings.Join(args, " "))
			})
			printState(syncer)
		case "join":
			runCmd(len(args) >= 2, "join <code> <name>", func() error {
				return syncer.Join(ctx, model.RoomID(args[0]), strings.Join(args[1:], " "))
			})
			printState(syncer)
		case "vote":
			runCmd(len(args) == 1, "vote <card>", func() error {
				return syncer.Vote(ctx, model.CardValue(args[0]))
			})
		case "story":
			runCmd(len(args) >= 1, "story <title>", func() error {
				return syncer.AddStory(ctx, strings.Join(args, " "))
			})
		case "generate":
			runCmd(len(args) >= 1, "generate <feature prompt>", func() error {
				stories, err := api.GenerateStories(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				for _, s := range stories {
					fmt.Printf("  proposed: %s\n", s.Title)
				}
				return syncer.AddStories(ctx, stories)
			})
		case "select":
			runCmd(len(args) == 1, "select <storyID>", func() error {
				return syncer.SelectStory(ctx, args[0])
			})
		case "reveal":
			runCmd(true, "", func() error { return syncer.ToggleReveal(ctx) })
		case "round":
			runCmd(true, "", func() error { return syncer.NewRound(ctx) })
		case "add":
			runCmd(len(args) >= 1, "add <name>", func() error {
				return syncer.AddPlayer(ctx, strings.Join(args, " "))
			})
		case "kick":
			runCmd(len(args) == 1, "kick <playerID>", func() error {
				return syncer.RemovePlayer(ctx, args[0])
			})
		case "state":
			syncer.Refresh(ctx)
			printState(syncer)
		case "leave":
			syncer.Logout()
			fmt.Println("Left the room.")
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q, type 'help'\n", cmd)
		}
	}
}

func runCmd(argsOK bool, usage string, fn func() error) {
	if !argsOK {
		fmt.Println("usage:", usage)
		return
	}
	if err := fn(); err != nil {
		fmt.Println("error:", err)
	}
}

func printHelp() {
	fmt.Println(`commands:
  create <name>            create a room, you become the moderator
  join <code> <name>       join an existing room
  vote <card>              play a card (0 1 2 3 5 8 13 20 40 100 ? ☕)
  story <title>            add a story
  generate <prompt>        generate stories with AI and add them
  select <storyID>         switch the active story (starts a fresh round)
  reveal                   reveal/hide votes
  round                    start a new round
  add <name>               add an offline player
  kick <playerID>          remove a player
  state                    refresh and show the room
  leave                    log out of the room
  quit                     exit`)
}

func printState(syncer *client.Syncer) {
	state, ok := syncer.State()
	if !ok {
		fmt.Println("Not in a room.")
		return
	}

	fmt.Printf("room %s  votesRevealed=%v\n", state.RoomID, state.VotesRevealed)
	fmt.Println("players:")
	for _, p := range state.Players {
		role := ""
		if p.IsModerator {
			role = " (moderator)"
		}
		vote := "-"
		if state.VotesRevealed && p.Vote != nil {
			vote = string(*p.Vote)
		} else if p.HasVoted {
			vote = "voted"
		}
		self := ""
		if p.ID == syncer.PlayerID() {
			self = " <- you"
		}
		fmt.Printf("  %-24s %s%s [%s]%s\n", p.Name, p.ID, role, vote, self)
	}
	fmt.Println("stories:")
	for _, st := range state.Stories {
		marker := " "
		if state.CurrentStoryID != nil && *state.CurrentStoryID == st.ID {
			marker = "*"
		}
		fmt.Printf("  %s %s  %s\n", marker, st.ID, st.Title)
	}
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".planning-poker-session.json"
	}
	return filepath.Join(home, ".planning-poker", "session.json")
}
