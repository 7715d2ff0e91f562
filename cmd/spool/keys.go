package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Play     key.Binding
	Pause    key.Binding
	Stop     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Shuffle  key.Binding
	SeekBack key.Binding
	SeekFwd  key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Open     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Play:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play")),
		Pause:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Stop:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Next:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		Prev:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "previous")),
		Shuffle:  key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "shuffle")),
		SeekBack: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "-5s")),
		SeekFwd:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "+5s")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play selected")),
		Open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "add files")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Pause, k.Stop, k.Next, k.Prev, k.Shuffle, k.Open, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Pause, k.Stop},
		{k.Next, k.Prev, k.Shuffle},
		{k.SeekBack, k.SeekFwd, k.Open},
		{k.Up, k.Down, k.Select},
		{k.Help, k.Quit},
	}
}
