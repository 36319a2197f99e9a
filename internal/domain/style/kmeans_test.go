package style_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/shatranj-dev/shatranj/internal/domain/style"
)

func TestKMeans(t *testing.T) {
	Convey("Given two well-separated groups of points", t, func() {
		points := [][]float64{
			{0.0, 0.0},
			{0.1, 0.0},
			{0.0, 0.1},
			{10.0, 10.0},
			{10.1, 10.0},
			{10.0, 10.1},
		}

		Convey("When clustered with k=2", func() {
			labels, centroids, err := style.KMeans(points, 2, 42)

			Convey("Then each group lands in its own cluster", func() {
				So(err, ShouldBeNil)
				So(labels, ShouldHaveLength, 6)
				So(centroids, ShouldHaveLength, 2)
				So(labels[0], ShouldEqual, labels[1])
				So(labels[1], ShouldEqual, labels[2])
				So(labels[3], ShouldEqual, labels[4])
				So(labels[4], ShouldEqual, labels[5])
				So(labels[0], ShouldNotEqual, labels[3])
			})
		})

		Convey("When clustered twice with the same seed", func() {
			labelsA, centroidsA, errA := style.KMeans(points, 2, 7)
			labelsB, centroidsB, errB := style.KMeans(points, 2, 7)

			Convey("Then both runs are identical", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(labelsB, ShouldResemble, labelsA)
				So(centroidsB, ShouldResemble, centroidsA)
			})
		})
	})

	Convey("Given fewer points than requested clusters", t, func() {
		points := [][]float64{{1, 1}, {2, 2}, {3, 3}}

		Convey("When clustered with k=50", func() {
			labels, centroids, err := style.KMeans(points, 50, 42)

			Convey("Then k is clamped to the population size", func() {
				So(err, ShouldBeNil)
				So(centroids, ShouldHaveLength, 3)
				So(labels, ShouldHaveLength, 3)
			})
		})
	})

	Convey("Given a single point", t, func() {
		Convey("When clustered with k=1", func() {
			labels, centroids, err := style.KMeans([][]float64{{4, 5}}, 1, 0)

			Convey("Then the centroid is the point itself", func() {
				So(err, ShouldBeNil)
				So(labels, ShouldResemble, []int{0})
				So(centroids[0], ShouldResemble, []float64{4, 5})
			})
		})
	})

	Convey("Given invalid inputs", t, func() {
		Convey("When clustering an empty point set", func() {
			_, _, err := style.KMeans(nil, 2, 42)
			So(err, ShouldEqual, style.ErrEmptyPopulation)
		})

		Convey("When clustering with a non-positive k", func() {
			_, _, err := style.KMeans([][]float64{{1}}, 0, 42)
			So(err, ShouldEqual, style.ErrInvalidClusterCount)
		})
	})
}
