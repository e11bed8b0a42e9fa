// A load-generating client measuring the four CRUD operations of the drivers
// API against a running service.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gitlab.com/f1hub/f1hub-service/internal/randomgen"
	"gitlab.com/f1hub/f1hub-service/pkg/model"
)

const serverPort = 8080

// Usage example on the command line:
// > go run main.go
func main() {
	fmt.Println()
	fmt.Println("  Elements      POST       PUT       GET    DELETE ")
	fmt.Println("---------------------------------------------------")
	sizes := []int{1000, 5000, 10000, 50000, 100000}
	for _, loops := range sizes {
		firstID, err := sendPostRequest()
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("%10d", loops)
		{
			// POST requests
			var duration int64
			for i := 0; i < loops; i++ {
				start := time.Now()
				if _, err := sendPostRequest(); err != nil {
					fmt.Println(err)
					return
				}
				duration += time.Since(start).Microseconds()
			}
			fmt.Printf("%10d", duration/int64(loops))
		}
		{
			// PUT requests
			var duration int64
			for i := 0; i < loops; i++ {
				start := time.Now()
				if err := sendPutRequest(firstID); err != nil {
					fmt.Println(err)
					return
				}
				duration += time.Since(start).Microseconds()
			}
			fmt.Printf("%10d", duration/int64(loops))
		}
		{
			// GET requests
			var duration int64
			for i := 0; i < loops; i++ {
				start := time.Now()
				if err := sendGetRequest(firstID); err != nil {
					fmt.Println(err)
					return
				}
				duration += time.Since(start).Microseconds()
			}
			fmt.Printf("%10d", duration/int64(loops))
		}
		{
			// DELETE requests use the ids created by the POST loop above.
			var duration int64
			for i := 0; i < loops; i++ {
				start := time.Now()
				if err := sendDeleteRequest(firstID + int64(i) + 1); err != nil {
					fmt.Println(err)
					return
				}
				duration += time.Since(start).Microseconds()
			}
			fmt.Printf("%10d", duration/int64(loops))
		}
		fmt.Println()
	}
}

func driversURL() string {
	return fmt.Sprintf("http://localhost:%d/api/drivers", serverPort)
}

// sendPostRequest creates a random driver and returns its assigned id.
func sendPostRequest() (int64, error) {
	body, err := json.Marshal(randomgen.Driver())
	if err != nil {
		return 0, err
	}
	res, err := http.Post(driversURL(), "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		return 0, fmt.Errorf("POST returned status %d", res.StatusCode)
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, err
	}
	var created model.Driver
	if err := json.Unmarshal(data, &created); err != nil {
		return 0, err
	}
	return created.Id, nil
}

func sendPutRequest(id int64) error {
	body := []byte(`{"points": 42}`)
	request, err := http.NewRequest(http.MethodPut,
		fmt.Sprintf("%s/%d", driversURL(), id), bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(request)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("PUT returned status %d", res.StatusCode)
	}
	return nil
}

func sendGetRequest(id int64) error {
	res, err := http.Get(fmt.Sprintf("%s/%d", driversURL(), id))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("GET returned status %d", res.StatusCode)
	}
	return nil
}

func sendDeleteRequest(id int64) error {
	request, err := http.NewRequest(http.MethodDelete,
		fmt.Sprintf("%s/%d", driversURL(), id), nil)
	if err != nil {
		return err
	}
	res, err := http.DefaultClient.Do(request)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("DELETE returned status %d", res.StatusCode)
	}
	return nil
}
