package rotate_test

import (
	"fmt"

	"github.com/matzehuels/layoutgen/pkg/rotate"
)

func ExamplePipeline_Transform() {
	p, err := rotate.NewPipeline(rotate.DefaultOptions())
	if err != nil {
		panic(err)
	}

	base := rotate.Document(`<LinearLayout android:orientation="vertical"><Button android:text="ok" /></LinearLayout>`)
	res, err := p.Transform(base, rotate.Angle90)
	if err != nil {
		panic(err)
	}

	fmt.Println(res.Document)
	fmt.Println(res.Applied)
	// Output:
	// <LinearLayout android:orientation="horizontal"><Button android:rotation="90" android:text="ok" /></LinearLayout>
	// [inject-rotation swap-orientation]
}
