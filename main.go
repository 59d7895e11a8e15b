package main

import (
	"fmt"
	"log"
	"os"

	"github.com/logrusorgru/aurora"

	"github.com/lakhotiaharshit/practical-rl-for-coders/agent/tabular/sarsa"
	"github.com/lakhotiaharshit/practical-rl-for-coders/environment/gridworld"
	"github.com/lakhotiaharshit/practical-rl-for-coders/environment/wrappers"
	"github.com/lakhotiaharshit/practical-rl-for-coders/experiment"
	"github.com/lakhotiaharshit/practical-rl-for-coders/experiment/monitor"
	"github.com/lakhotiaharshit/practical-rl-for-coders/experiment/tracker"
	"github.com/lakhotiaharshit/practical-rl-for-coders/report"
	"github.com/lakhotiaharshit/practical-rl-for-coders/table"
)

func main() {
	var seed uint64 = 192382

	for _, dir := range []string{"data", "videos"} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("main: could not create %v directory: %v", dir, err)
		}
	}

	// Create separate environments for learning and for evaluating the
	// greedy policy
	start := gridworld.Position{X: 0, Y: 0}
	goals := []gridworld.Position{{X: 4, Y: 4}}

	learningEnv, err := gridworld.New(5, 5, start, goals, -0.1, 1.0, 50,
		seed)
	if err != nil {
		log.Fatalf("main: could not create learning environment: %v", err)
	}
	testingEnv, err := gridworld.New(5, 5, start, goals, -0.1, 1.0, 50,
		seed+1)
	if err != nil {
		log.Fatalf("main: could not create testing environment: %v", err)
	}

	// Record the return and length of every learning episode
	monitored := wrappers.NewMonitor(learningEnv,
		tracker.NewReturn("data/returns.bin"),
		tracker.NewEpisodeLength("data/lengths.bin"))

	// Action value estimates are checkpointed to disk as training runs
	qTable := table.NewMapTable("qtable.json")

	agentConfig := sarsa.Config{
		Gamma:             0.99,
		StartEpsilon:      1.0,
		EndEpsilon:        0.05,
		StartLearningRate: 0.5,
		EndLearningRate:   0.1,
		TotalObservations: 100_000,
	}
	a, err := sarsa.New(agentConfig, seed)
	if err != nil {
		log.Fatalf("main: could not create agent: %v", err)
	}

	trainerConfig := experiment.Config{
		TestInterval: 5_000,
		TestEpisodes: 10,
		SaveInterval: 50,
		VideoDir:     "videos",
		ShowProgress: true,
	}
	trainer, err := experiment.NewTrainer(a, monitored, testingEnv, qTable,
		trainerConfig, seed)
	if err != nil {
		log.Fatalf("main: could not create trainer: %v", err)
	}

	// Stream progress events to watching websocket clients
	server := monitor.NewServer(":8089")
	server.Start()
	defer server.Stop()
	trainer.Register(server)

	fmt.Println(aurora.Bold("SARSA on a 5x5 gridworld"))
	fmt.Printf("streaming progress events at %v\n",
		aurora.Blue("ws://localhost:8089/events"))

	if err := trainer.Run(); err != nil {
		log.Fatalf("main: %v", err)
	}

	returns, err := tracker.LoadData("data/returns.bin")
	if err != nil {
		log.Fatalf("main: could not load episodic returns: %v", err)
	}
	if err := report.LearningCurve("report.html", returns,
		trainer.EvalPoints()); err != nil {
		log.Fatalf("main: %v", err)
	}

	points := trainer.EvalPoints()
	final := points[len(points)-1]
	fmt.Printf("%v %.3f\n", aurora.Green("final average reward:"),
		final.AverageReward)
	fmt.Printf("action values checkpointed in %v, full report in %v\n",
		aurora.Cyan("qtable.json"), aurora.Cyan("report.html"))
}
