package searchserver_test

import (
	"fmt"

	"github.com/wizenheimer/searchserver"
)

func Example() {
	server, err := searchserver.NewSearchServer("and in at")
	if err != nil {
		panic(err)
	}

	_ = server.AddDocument(0, "white cat and fashionable collar", searchserver.StatusActual, []int{8, -3})
	_ = server.AddDocument(1, "fluffy cat fluffy tail", searchserver.StatusActual, []int{7, 2, 7})
	_ = server.AddDocument(2, "groomed dog expressive eyes", searchserver.StatusActual, []int{5, -12, 2, 1})
	_ = server.AddDocument(3, "groomed starling eugene", searchserver.StatusBanned, []int{9})

	documents, err := server.FindTopDocuments("fluffy groomed cat")
	if err != nil {
		panic(err)
	}
	for _, document := range documents {
		fmt.Println(document.ID, document.Rating)
	}
	// Output:
	// 1 5
	// 0 2
	// 2 -1
}

func ExampleSearchServer_MatchDocument() {
	server, _ := searchserver.NewSearchServer("and in at")
	_ = server.AddDocument(2, "curly dog and fancy collar", searchserver.StatusActual, []int{1, 2, 3})

	words, status, _ := server.MatchDocument("curly dog parrot", 2)
	fmt.Println(words, status)

	words, status, _ = server.MatchDocument("curly dog -collar", 2)
	fmt.Println(words, status)
	// Output:
	// [curly dog] ACTUAL
	// [] ACTUAL
}

func ExampleRequestQueue() {
	server, _ := searchserver.NewSearchServer("")
	_ = server.AddDocument(1, "curly cat", searchserver.StatusActual, nil)

	queue := searchserver.NewRequestQueue(server)
	_, _ = queue.AddFindRequest("dog")
	_, _ = queue.AddFindRequest("cat")
	_, _ = queue.AddFindRequest("sparrow")

	fmt.Println(queue.NoResultRequests())
	// Output:
	// 2
}
