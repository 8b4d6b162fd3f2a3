package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	wasteGrpc "liyu1981.xyz/prioribin-service/pkg/grpc"
)

var maxBins int = 1000
var httpHostPort string = "127.0.0.1:5000"
var grpcHostPort string = "127.0.0.1:50051"

var grpcClient wasteGrpc.IngestServiceClient

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

var failures atomic.Int64

func main() {
	binIDs := make([]string, maxBins)
	for i := range maxBins {
		binIDs[i] = "BENCH-" + uuid.NewString()[:8]
	}
	fmt.Printf("generated %v bin IDs\n", maxBins)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = wasteGrpc.NewIngestServiceClient(conn)

	fmt.Printf("gRPC client ready\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := range maxBins {
		wg.Add(1)
		go func() {
			registerBin(binIDs[i])
			fmt.Printf("\rregistered bin %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rregistered %v bins: used time=%v seconds, throughput=%v action/second\n",
		maxBins, usedTime.Seconds(), float64(maxBins)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := range maxBins {
		wg.Add(1)
		go func() {
			doAction(binIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v bins: used time=%v seconds, throughput=%v action/second, failures=%v\n",
		maxBins, usedTime.Seconds(), float64(maxBins*3)/usedTime.Seconds(), failures.Load(),
	)
}

func flipCoin() bool {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Int31n(100000)%2 == 0
}

func rndInt(n int) int {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Intn(n)
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndMu.Lock()
	val := min + rnd.Float64()*(max-min)
	rndMu.Unlock()
	multiplier := math.Pow10(decimal)
	return math.Round(val*multiplier) / multiplier
}

func postJSON(path string, payload any) {
	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s%s", httpHostPort, path), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		failures.Add(1)
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		failures.Add(1)
	}
}

func registerBin(binID string) {
	postJSON("/api/bins", map[string]any{
		"bin_id": binID,
		"lat":    rndFloat64(8.9, 9.1, 6),
		"lon":    rndFloat64(38.6, 38.9, 6),
	})
}

func doAction(binID string) {
	actions := []func(){
		genUpdateFillAction(binID),
		genListPriorityAction(),
		genUpdateFillAction(binID),
	}
	if flipCoin() {
		actions[2] = genCollectAction(binID)
	}
	rndMu.Lock()
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
	})
	rndMu.Unlock()
	for _, action := range actions {
		action()
		fmt.Printf("\rexecuted action for bin %v", binID)
		time.Sleep(time.Duration(100+rndInt(1000)) * time.Millisecond)
	}
}

func genUpdateFillAction(binID string) func() {
	return func() {
		level := rndInt(101)

		if flipCoin() {
			postJSON("/api/bins/"+binID+"/fill", map[string]any{"fill_level": level, "source": "Sensor"})
			return
		}

		req, _ := structpb.NewStruct(map[string]any{"bin_id": binID, "fill_level": level})
		resp, err := grpcClient.UpdateFill(context.Background(), req)
		if err != nil {
			failures.Add(1)
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		if !resp.Fields["success"].GetBoolValue() {
			failures.Add(1)
			fmt.Printf("\nresponse success = false: %v\n", resp)
		}
	}
}

func genCollectAction(binID string) func() {
	return func() {
		if flipCoin() {
			postJSON("/api/bins/"+binID+"/collect", map[string]any{"collector_name": "bench"})
			return
		}

		req, _ := structpb.NewStruct(map[string]any{"bin_id": binID, "collector_name": "bench"})
		if _, err := grpcClient.Collect(context.Background(), req); err != nil {
			failures.Add(1)
			fmt.Printf("\nerror: %v\n", err)
		}
	}
}

func genListPriorityAction() func() {
	return func() {
		if flipCoin() {
			resp, err := http.Get(fmt.Sprintf("http://%s/api/bins/priority", httpHostPort))
			if err != nil {
				failures.Add(1)
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				failures.Add(1)
			}
			return
		}

		if _, err := grpcClient.ListPriority(context.Background(), &structpb.Struct{}); err != nil {
			failures.Add(1)
			fmt.Printf("\nerror: %v\n", err)
		}
	}
}
