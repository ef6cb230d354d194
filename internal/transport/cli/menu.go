package cli

import (
	"fmt"
	"strconv"
	"strings"
)

type command int

const (
	cmdNewWishList command = iota + 1
	cmdListDatabase
	cmdAddPartToDatabase
	cmdClose
	cmdAddFromDatabase
	cmdRemoveFromWishList
	cmdShowWishList
	cmdPurchaseAndClose
	cmdCPU
	cmdGraphicsCard
	cmdMemory
	cmdStorage
	cmdBack
)

var labels = map[command]string{
	cmdNewWishList:        "New Wish List",
	cmdListDatabase:       "List Database",
	cmdAddPartToDatabase:  "Add Part To Database",
	cmdClose:              "Close",
	cmdAddFromDatabase:    "Add From Database",
	cmdRemoveFromWishList: "Remove From Wish List",
	cmdShowWishList:       "Show Wish List",
	cmdPurchaseAndClose:   "Purchase And Close",
	cmdCPU:                "CPU",
	cmdGraphicsCard:       "Graphics Card",
	cmdMemory:             "Memory",
	cmdStorage:            "Storage",
	cmdBack:               "Back",
}

func (c command) String() string { return labels[c] }

type menu struct {
	title string
	items []command
}

var (
	mainMenu = menu{
		title: "Main Menu",
		items: []command{cmdNewWishList, cmdListDatabase, cmdAddPartToDatabase, cmdClose},
	}
	wishListMenu = menu{
		title: "Wish List",
		items: []command{cmdAddFromDatabase, cmdRemoveFromWishList, cmdShowWishList, cmdPurchaseAndClose, cmdClose},
	}
	partTypesMenu = menu{
		title: "Part Types",
		items: []command{cmdCPU, cmdGraphicsCard, cmdMemory, cmdStorage, cmdBack},
	}
)

func (m menu) render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "---- %s ----\n", m.title)
	for i, c := range m.items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c)
	}
	return b.String()
}

// parseOption maps a 1-based option typed by the user to a command.
func (m menu) parseOption(s string) (command, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if n < 1 || n > len(m.items) {
		return 0, fmt.Errorf("%d is outside range 1 - %d", n, len(m.items))
	}
	return m.items[n-1], nil
}

// choose shows m and re-prompts until a valid option is entered.
func (h *Handler) choose(m menu) (command, error) {
	for {
		fmt.Fprint(h.out, m.render())

		line, err := h.readLine(fmt.Sprintf("Enter an option (1-%d): ", len(m.items)))
		if err != nil {
			return 0, err
		}

		cmd, err := m.parseOption(line)
		if err != nil {
			h.failure("%s.", err)
			h.println()
			continue
		}
		return cmd, nil
	}
}
