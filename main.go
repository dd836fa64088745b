package main

import "github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/cmd"

func main() {
	cmd.Execute()
}
